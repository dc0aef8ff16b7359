package esse3

import (
	"errors"
	"esse3report/lib/htmlutil"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrDiscoveryFailed means no plausible select field could be located.
// Non-fatal: callers fall back to manual input or a hardcoded default.
var ErrDiscoveryFailed = errors.New("no plausible select field found")

type SelectOption struct {
	Value string
	Label string
}

type SelectField struct {
	Name    string
	ID      string
	Options []SelectOption
}

// DiscoverSelect locates a select field in a document whose exact name
// is unknown. It tries, in order:
//
//  1. an exact name match against any of the hints
//  2. a scan of every select whose name/id/class contains one of the
//     keyword fragments
//  3. the select with the most non-empty options, provided it has more
//     than two (the real target tends to be the richest field on the page)
func DiscoverSelect(doc *goquery.Document, hints []string, keywords []string) (SelectField, error) {
	for _, hint := range hints {
		sel := doc.Find(fmt.Sprintf("select[name=%s]", hint))
		if sel.Length() > 0 {
			return buildSelectField(sel.First()), nil
		}
	}

	var byKeyword *goquery.Selection
	doc.Find("select").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		identity := strings.ToLower(
			sel.AttrOr("name", "") + " " + sel.AttrOr("id", "") + " " + sel.AttrOr("class", ""),
		)
		for _, kw := range keywords {
			if strings.Contains(identity, kw) {
				byKeyword = sel
				return false
			}
		}
		return true
	})
	if byKeyword != nil {
		return buildSelectField(byKeyword), nil
	}

	var richest *goquery.Selection
	maxOptions := 0
	doc.Find("select").Each(func(_ int, sel *goquery.Selection) {
		count := 0
		sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
			if strings.TrimSpace(opt.AttrOr("value", "")) != "" {
				count++
			}
		})
		if count > maxOptions {
			maxOptions = count
			richest = sel
		}
	})
	if richest != nil && maxOptions > 2 {
		return buildSelectField(richest), nil
	}

	return SelectField{}, ErrDiscoveryFailed
}

func buildSelectField(sel *goquery.Selection) SelectField {
	field := SelectField{
		Name: sel.AttrOr("name", ""),
		ID:   sel.AttrOr("id", ""),
	}
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value := strings.TrimSpace(opt.AttrOr("value", ""))
		label := htmlutil.CleanText(opt.Text())
		if value == "" || label == "" {
			return
		}
		field.Options = append(field.Options, SelectOption{
			Value: value,
			Label: label,
		})
	})
	return field
}

// HiddenInputs collects the hidden input name/value pairs of a form,
// used to prime the search form with whatever state parameters the
// current deployment expects.
func HiddenInputs(doc *goquery.Document, formID string) map[string]string {
	out := map[string]string{}
	doc.Find(fmt.Sprintf("form#%s input[type=hidden]", formID)).
		Each(func(_ int, input *goquery.Selection) {
			name, ok := input.Attr("name")
			if !ok || name == "" {
				return
			}
			out[name] = input.AttrOr("value", "")
		})
	return out
}
