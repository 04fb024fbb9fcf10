// Package dataset loads the Open Images CSV tables the downloader
// consumes.
//
// Three tables are involved:
//   - the label vocabulary: headerless rows of (code, name)
//   - the annotation table: header row, columns ImageID, LabelName
//     and IsOccluded (IsOccluded uses the dataset's "0"/"1" encoding)
//   - the image-URL table: header row with at least an image_url
//     column, from which the download base URL is derived
//
// Column positions in headered tables are discovered from the header,
// so extra columns are tolerated in any order.
package dataset
