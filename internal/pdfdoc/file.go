package pdfdoc

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	// Fallback page dimensions for pages without a usable MediaBox.
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// Text items whose tops are within this distance are treated as one line.
	rowTolerance = 5.0

	// Height assigned to text items that carry no font size.
	defaultGlyphHeight = 12.0
)

// ValidateFile performs stat-level checks on a candidate PDF path before
// any parsing is attempted. A maxSize of zero or less disables the size
// limit.
func ValidateFile(path string, maxSize int64) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if maxSize > 0 && fileInfo.Size() > maxSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxSize)
	}
	return nil
}

// File is a Document backed by a PDF on disk. Structure is validated with
// pdfcpu at open time; positioned text comes from ledongthuc/pdf. Line and
// geometry lookups are cached per page. File is not safe for concurrent
// use.
type File struct {
	path      string
	file      *os.File
	reader    *pdf.Reader
	hasImages bool
	lines     map[int][]Line
	sizes     map[int][2]float64
}

// Open opens the PDF at path. Any structural failure, from either the
// validating read or the text-layer open, is returned as an error; callers
// treat an unreadable document as a likely scan.
func Open(path string) (*File, error) {
	hasImages, err := readStructure(path)
	if err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf text layer: %w", err)
	}

	return &File{
		path:      path,
		file:      f,
		reader:    reader,
		hasImages: hasImages,
		lines:     make(map[int][]Line),
		sizes:     make(map[int][2]float64),
	}, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Path returns the file path the document was opened from.
func (f *File) Path() string {
	return f.path
}

// PageCount returns the number of pages in the document.
func (f *File) PageCount() int {
	return f.reader.NumPage()
}

// HasImageStreams reports whether the document contains image XObject
// streams.
func (f *File) HasImageStreams() bool {
	return f.hasImages
}

// PageSize returns the page dimensions from its MediaBox, walking up the
// page tree for inherited values and falling back to US Letter when no
// usable box exists.
func (f *File) PageSize(page int) (width, height float64, err error) {
	if s, ok := f.sizes[page]; ok {
		return s[0], s[1], nil
	}
	p, err := f.page(page)
	if err != nil {
		return 0, 0, err
	}
	width, height = mediaBoxSize(p)
	f.sizes[page] = [2]float64{width, height}
	return width, height, nil
}

// PageText returns the plain text of a page. Extraction panics from
// malformed content streams are recovered and reported as errors.
func (f *File) PageText(page int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("text extraction panicked on page %d: %v", page, r)
		}
	}()

	p, err := f.page(page)
	if err != nil {
		return "", err
	}
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract text from page %d: %w", page, err)
	}
	return text, nil
}

// PageLines returns the assembled text lines of a page in top-down order.
func (f *File) PageLines(page int) ([]Line, error) {
	if ls, ok := f.lines[page]; ok {
		return ls, nil
	}
	p, err := f.page(page)
	if err != nil {
		return nil, err
	}
	_, height, err := f.PageSize(page)
	if err != nil {
		return nil, err
	}
	ls := assembleLines(contentTexts(p), height)
	f.lines[page] = ls
	return ls, nil
}

// FindAll returns every occurrence of the pattern on a page.
func (f *File) FindAll(page int, re *regexp.Regexp) ([]Span, error) {
	ls, err := f.PageLines(page)
	if err != nil {
		return nil, err
	}
	return SearchLines(page, ls, re), nil
}

// CropText returns the text of all lines whose vertical midpoint falls
// inside [top, bottom) on the given page.
func (f *File) CropText(page int, top, bottom float64) (string, error) {
	ls, err := f.PageLines(page)
	if err != nil {
		return "", err
	}
	return CropLines(ls, top, bottom), nil
}

func (f *File) page(page int) (pdf.Page, error) {
	if page < 0 || page >= f.reader.NumPage() {
		return pdf.Page{}, fmt.Errorf("page %d out of range (document has %d pages)",
			page, f.reader.NumPage())
	}
	// ledongthuc pages are 1-based.
	return f.reader.Page(page + 1), nil
}

// contentTexts reads the positioned text items of a page, recovering from
// parser panics on corrupt content streams.
func contentTexts(p pdf.Page) (texts []pdf.Text) {
	defer func() {
		if recover() != nil {
			texts = nil
		}
	}()
	if p.V.IsNull() {
		return nil
	}
	return p.Content().Text
}

// assembleLines converts raw positioned text items into top-down lines.
// Items are flipped from PDF's bottom-origin coordinates using the page
// height, grouped into rows by vertical proximity, and concatenated left
// to right within each row.
func assembleLines(texts []pdf.Text, pageHeight float64) []Line {
	if len(texts) == 0 {
		return nil
	}

	type item struct {
		top, bottom, left, right float64
		s                        string
	}
	items := make([]item, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		h := t.FontSize
		if h == 0 {
			h = defaultGlyphHeight
		}
		items = append(items, item{
			top:    pageHeight - (t.Y + h),
			bottom: pageHeight - t.Y,
			left:   t.X,
			right:  t.X + t.W,
			s:      t.S,
		})
	}
	if len(items) == 0 {
		return nil
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].top < items[j].top })

	var rows [][]item
	row := []item{items[0]}
	rowTop := items[0].top
	for _, it := range items[1:] {
		if math.Abs(it.top-rowTop) <= rowTolerance {
			row = append(row, it)
			continue
		}
		rows = append(rows, row)
		row = []item{it}
		rowTop = it.top
	}
	rows = append(rows, row)

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].left < row[j].left })
		ln := Line{
			Top:    row[0].top,
			Bottom: row[0].bottom,
			Left:   row[0].left,
			Right:  row[0].right,
		}
		var sb strings.Builder
		for _, it := range row {
			sb.WriteString(it.s)
			ln.Top = math.Min(ln.Top, it.top)
			ln.Bottom = math.Max(ln.Bottom, it.bottom)
			ln.Left = math.Min(ln.Left, it.left)
			ln.Right = math.Max(ln.Right, it.right)
		}
		ln.Text = sb.String()
		lines = append(lines, ln)
	}
	return lines
}

// readStructure validates the document with pdfcpu in relaxed mode and
// reports whether any image XObject streams are present.
func readStructure(path string) (hasImages bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return false, fmt.Errorf("read pdf structure: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return false, fmt.Errorf("resolve page count: %w", err)
	}
	return detectImageStreams(ctx), nil
}

// detectImageStreams scans the cross-reference table for stream objects
// with an Image subtype.
func detectImageStreams(ctx *model.Context) bool {
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// mediaBoxSize resolves a page's dimensions from its MediaBox, trying the
// page's own entry first and then inherited entries up the page tree.
func mediaBoxSize(p pdf.Page) (width, height float64) {
	defer func() {
		if recover() != nil {
			width, height = defaultPageWidth, defaultPageHeight
		}
	}()

	if w, h, ok := rectSize(p.V.Key("MediaBox")); ok {
		return w, h
	}

	current := p.V
	for i := 0; i < 10; i++ {
		parent := current.Key("Parent")
		if parent.IsNull() {
			break
		}
		if w, h, ok := rectSize(parent.Key("MediaBox")); ok {
			return w, h
		}
		current = parent
	}
	return defaultPageWidth, defaultPageHeight
}

// rectSize interprets a PDF rectangle array as width and height,
// tolerating swapped corner coordinates.
func rectSize(v pdf.Value) (width, height float64, ok bool) {
	if v.IsNull() || v.Kind() != pdf.Array || v.Len() != 4 {
		return 0, 0, false
	}
	var c [4]float64
	for i := 0; i < 4; i++ {
		el := v.Index(i)
		switch el.Kind() {
		case pdf.Integer:
			c[i] = float64(el.Int64())
		case pdf.Real:
			c[i] = el.Float64()
		default:
			return 0, 0, false
		}
	}
	width = math.Abs(c[2] - c[0])
	height = math.Abs(c[3] - c[1])
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
