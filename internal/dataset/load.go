package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dbmrq/districtboard/internal/district"
	"github.com/dbmrq/districtboard/internal/errors"
)

// Supported character sets for CSV input.
const (
	EncodingUTF8  = "utf-8"
	EncodingEUCKR = "euc-kr"
	EncodingCP949 = "cp949"
)

// Encodings lists the accepted encoding names.
var Encodings = []string{EncodingUTF8, EncodingEUCKR, EncodingCP949}

// Options control how raw bytes become a Table.
type Options struct {
	// Source names the input in errors, logs and cache keys.
	Source string
	// Encoding is the CSV character set. Empty means UTF-8.
	Encoding string
	// Sheet selects the XLSX sheet. Empty means the first one.
	Sheet string
}

func (o Options) source() string {
	if o.Source == "" {
		return "input"
	}
	return o.Source
}

// textDecoder returns the decoder for name. A leading UTF-8 BOM is dropped
// in the UTF-8 case, which is how spreadsheet exports usually arrive.
func textDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case EncodingEUCKR, EncodingCP949:
		// x/text's EUC-KR table is the CP949 superset.
		return korean.EUCKR.NewDecoder(), nil
	}
	return nil, errors.UnsupportedEncoding(name, Encodings)
}

// Load reads a CSV stream with a header row into a Table. A header that
// lacks any required column is a data error naming every missing column.
// Extra columns are kept in the frame and otherwise ignored.
func Load(r io.Reader, opts Options) (*Table, error) {
	dec, err := textDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.DataParseError(opts.source(), err)
	}
	return fromRows(rows, opts.source())
}

// LoadXLSX reads the first (or the named) sheet of a workbook into a Table.
func LoadXLSX(r io.Reader, opts Options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.DataParseError(opts.source(), err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.DataParseError(opts.source(), fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.DataParseError(opts.source(), err).WithDetails("sheet", sheet)
	}

	// GetRows drops trailing empty cells; pad so every row matches the header.
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows {
			if len(row) < width {
				rows[i] = append(row, make([]string, width-len(row))...)
			} else if len(row) > width {
				rows[i] = row[:width]
			}
		}
	}
	return fromRows(rows, opts.source())
}

// LoadBytes dispatches on the source extension: .xlsx goes to LoadXLSX,
// anything else is read as CSV.
func LoadBytes(data []byte, opts Options) (*Table, error) {
	if IsXLSX(opts.Source) {
		return LoadXLSX(bytes.NewReader(data), opts)
	}
	return Load(bytes.NewReader(data), opts)
}

// LoadFile reads path from disk.
func LoadFile(path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.DataFileNotFound(path)
		}
		return nil, errors.DataParseError(path, err)
	}
	if opts.Source == "" {
		opts.Source = path
	}
	return LoadBytes(data, opts)
}

// LoadSample returns the bundled sample dataset.
func LoadSample() (*Table, error) {
	return Load(bytes.NewReader(district.Sample()), Options{Source: district.SampleName})
}

// IsXLSX reports whether name looks like an Excel workbook.
func IsXLSX(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xlsm"
}

func fromRows(rows [][]string, source string) (*Table, error) {
	if len(rows) == 0 {
		return nil, errors.DataParseError(source, fmt.Errorf("no header row"))
	}

	header := rows[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	var missing []string
	for _, col := range district.RequiredColumns() {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.MissingColumns(source, missing)
	}

	types := columnTypes()
	if len(rows) == 1 {
		return FromFrame(emptyFrame(header, types), source), nil
	}

	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, errors.DataParseError(source, df.Err)
	}
	return FromFrame(df, source), nil
}
