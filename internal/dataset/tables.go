package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
)

// Common errors.
var (
	ErrMissingColumn = errors.New("dataset: missing column")
	ErrEmptyTable    = errors.New("dataset: table has no data rows")
)

// LabelEntry is one row of the label vocabulary.
type LabelEntry struct {
	Code string
	Name string
}

// AnnotationRow is one (image, label) observation.
type AnnotationRow struct {
	ImageID    string
	LabelName  string
	IsOccluded bool
}

// LoadLabelmap reads the headerless (code, name) vocabulary table.
func LoadLabelmap(path string) ([]LabelEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labelmap: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	var entries []LabelEntry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read labelmap: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: labelmap row needs (code, name)", ErrMissingColumn)
		}
		entries = append(entries, LabelEntry{Code: record[0], Name: record[1]})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("labelmap: %w", ErrEmptyTable)
	}
	return entries, nil
}

// LoadAnnotations reads the annotation table. The header row is used to
// locate the ImageID, LabelName and IsOccluded columns; extra columns
// are ignored. A table without an IsOccluded column is treated as fully
// unoccluded.
func LoadAnnotations(path string) ([]AnnotationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotations: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read annotations header: %w", err)
	}

	imageID := columnIndex(header, "ImageID")
	labelName := columnIndex(header, "LabelName")
	occluded := columnIndex(header, "IsOccluded")
	if imageID < 0 {
		return nil, fmt.Errorf("%w: ImageID", ErrMissingColumn)
	}
	if labelName < 0 {
		return nil, fmt.Errorf("%w: LabelName", ErrMissingColumn)
	}

	var rows []AnnotationRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read annotations: %w", err)
		}
		row := AnnotationRow{
			ImageID:   record[imageID],
			LabelName: record[labelName],
		}
		if occluded >= 0 && occluded < len(record) {
			row.IsOccluded = record[occluded] == "1" || record[occluded] == "true"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BaseURL derives the download base URL from the image-URL table: the
// directory component of the first data row's image_url value.
func BaseURL(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open images table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return "", fmt.Errorf("read images header: %w", err)
	}
	col := columnIndex(header, "image_url")
	if col < 0 {
		return "", fmt.Errorf("%w: image_url", ErrMissingColumn)
	}

	record, err := r.Read()
	if err == io.EOF {
		return "", fmt.Errorf("images table: %w", ErrEmptyTable)
	}
	if err != nil {
		return "", fmt.Errorf("read images table: %w", err)
	}

	return dirURL(record[col])
}

// dirURL strips the last path segment from an image URL, keeping
// scheme and host intact.
func dirURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse image_url: %w", err)
	}
	u.Path = path.Dir(u.Path)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
