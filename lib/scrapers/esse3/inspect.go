package esse3

import (
	"context"
	"esse3report/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type SelectSummary struct {
	Name         string
	ID           string
	OptionsCount int
	FirstOptions []SelectOption
}

type FormSummary struct {
	ID     string
	Name   string
	Action string
	Method string
}

type HiddenInput struct {
	Name  string
	Value string
}

// PageStructure is a debugging snapshot of the markup shape the
// deployment currently serves: which selects, forms and hidden state
// parameters exist. Useful when discovery starts falling through to
// its heuristics.
type PageStructure struct {
	Title   string
	Selects []SelectSummary
	Forms   []FormSummary
	Hidden  []HiddenInput
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// InspectPage fetches the search page and summarizes its structure.
func (c *Client) InspectPage(ctx context.Context) (PageStructure, error) {
	doc, err := c.getSearchPage(ctx)
	if err != nil {
		return PageStructure{}, err
	}
	return InspectDocument(doc), nil
}

func InspectDocument(doc *goquery.Document) PageStructure {
	out := PageStructure{
		Title: htmlutil.CleanText(doc.Find("title").Text()),
	}

	doc.Find("select").Each(func(_ int, sel *goquery.Selection) {
		summary := SelectSummary{
			Name:         sel.AttrOr("name", "unnamed"),
			ID:           sel.AttrOr("id", "no-id"),
			OptionsCount: sel.Find("option").Length(),
		}
		sel.Find("option").EachWithBreak(func(i int, opt *goquery.Selection) bool {
			if i >= 5 {
				return false
			}
			summary.FirstOptions = append(summary.FirstOptions, SelectOption{
				Value: opt.AttrOr("value", ""),
				Label: truncate(htmlutil.CleanText(opt.Text()), 50),
			})
			return true
		})
		out.Selects = append(out.Selects, summary)
	})

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		out.Forms = append(out.Forms, FormSummary{
			ID:     form.AttrOr("id", "no-id"),
			Name:   form.AttrOr("name", "no-name"),
			Action: form.AttrOr("action", "no-action"),
			Method: form.AttrOr("method", "GET"),
		})
	})

	doc.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		out.Hidden = append(out.Hidden, HiddenInput{
			Name:  input.AttrOr("name", "no-name"),
			Value: truncate(input.AttrOr("value", ""), 50),
		})
	})

	return out
}
