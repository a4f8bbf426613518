package ledger

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/htmlindex"
)

const successCode = "00"

// parseJSON reads response.body. The items node takes several shapes: an
// empty string, a bare list, or {"item": object|list}.
func parseJSON(body []byte) (*Page, error) {
	if !gjson.ValidBytes(body) {
		return nil, eris.New("ledger: invalid json")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, eris.New("ledger: json is not an object")
	}

	if code := root.Get("response.header.resultCode"); code.Exists() && code.String() != successCode {
		return nil, &APIError{Code: code.String(), Message: root.Get("response.header.resultMsg").String()}
	}

	b := root.Get("response.body")
	page := &Page{TotalCount: int(b.Get("totalCount").Int())}

	items := b.Get("items")
	switch {
	case items.IsArray():
		page.Items = jsonItems(items.Array())
	case items.IsObject():
		item := items.Get("item")
		if item.IsArray() {
			page.Items = jsonItems(item.Array())
		} else if item.IsObject() {
			page.Items = jsonItems([]gjson.Result{item})
		}
	}
	return page, nil
}

func jsonItems(results []gjson.Result) []Item {
	out := make([]Item, 0, len(results))
	for _, r := range results {
		if !r.IsObject() {
			continue
		}
		item := make(Item)
		r.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.Null {
				item[key.String()] = value.String()
			}
			return true
		})
		out = append(out, item)
	}
	return out
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlItem struct {
	Fields []xmlField `xml:",any"`
}

// parseXML scans for body/totalCount and every item element. Service-level
// errors arrive either as header/resultCode or as the gateway's
// cmmMsgHeader/returnReasonCode envelope.
func parseXML(body []byte) (*Page, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "ledger: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var (
		page    Page
		sawBody bool
		code    string
		msg     string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ledger: read xml token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "body":
			sawBody = true
		case "resultCode", "returnReasonCode":
			if code, err = elementText(dec, &se); err != nil {
				return nil, err
			}
		case "resultMsg", "returnAuthMsg", "errMsg":
			if msg, err = elementText(dec, &se); err != nil {
				return nil, err
			}
		case "totalCount":
			s, err := elementText(dec, &se)
			if err != nil {
				return nil, err
			}
			page.TotalCount, _ = strconv.Atoi(s)
		case "item":
			var x xmlItem
			if err := dec.DecodeElement(&x, &se); err != nil {
				return nil, eris.Wrap(err, "ledger: decode xml item")
			}
			item := make(Item, len(x.Fields))
			for _, f := range x.Fields {
				item[f.XMLName.Local] = f.Value
			}
			page.Items = append(page.Items, item)
		}
	}

	if code != "" && code != successCode {
		return nil, &APIError{Code: code, Message: msg}
	}
	if !sawBody {
		return nil, eris.New("ledger: xml has no body element")
	}
	return &page, nil
}

func elementText(dec *xml.Decoder, se *xml.StartElement) (string, error) {
	var s string
	if err := dec.DecodeElement(&s, se); err != nil {
		return "", eris.Wrapf(err, "ledger: decode %s", se.Name.Local)
	}
	return strings.TrimSpace(s), nil
}
