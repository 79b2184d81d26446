package importer

import (
	"encoding/csv"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFile is returned for upload extensions we cannot parse.
var ErrUnsupportedFile = errors.New("unsupported file type")

// FileExt returns the lower-cased extension of an uploaded file name.
func FileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ParseUploadFile reads an uploaded statement file into raw records.
// CSV, XLSX and legacy XLS exports are accepted; the first sheet is used for
// workbooks.
func ParseUploadFile(file multipart.File, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	case ".xls":
		wb, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, err
		}
		return wb.ReadAllCells(65536), nil
	}
	return nil, ErrUnsupportedFile
}
