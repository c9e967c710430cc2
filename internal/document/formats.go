package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/htmlindex"
)

const docxBody = "word/document.xml"

var (
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	blankRunRe  = regexp.MustCompile(`[ \t\r\f\v\x{00A0}]+`)
	emptyLineRe = regexp.MustCompile(`\n(?: ?\n)+`)
)

func decodeText(data []byte, params map[string]string) (string, error) {
	text, err := toUTF8(data, params["charset"])
	if err != nil {
		return "", err
	}

	return normalizeWhitespace(strings.TrimPrefix(text, "\ufeff")), nil
}

// toUTF8 converts data from the sniffed charset. Legacy résumés are often
// Latin-1 or Windows-1252; unknown charsets are read as UTF-8.
func toUTF8(data []byte, charset string) (string, error) {
	if charset == "" || strings.EqualFold(charset, "utf-8") {
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return string(data), nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", charset, err)
	}

	return string(decoded), nil
}

func decodePDF(data []byte, _ map[string]string) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	// rows follow text positions, so Td and Tm line moves still end a line
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("extracting text of page %d: %w", i, err)
		}

		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
	}

	return normalizeWhitespace(b.String()), nil
}

func decodeDOCX(data []byte, _ map[string]string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	var body []byte
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", docxBody, err)
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", docxBody, err)
		}
		break
	}

	if body == nil {
		return "", errors.New("no " + docxBody + " found in docx")
	}

	xml := string(body)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")

	// runs of one paragraph are split into several tags, so tags are dropped without a separator
	text := html.UnescapeString(xmlTagRe.ReplaceAllString(xml, ""))

	return normalizeWhitespace(text), nil
}

// normalizeWhitespace collapses blank runs and empty lines but keeps line breaks,
// which the name heuristic depends on.
func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankRunRe.ReplaceAllString(s, " ")
	s = emptyLineRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
