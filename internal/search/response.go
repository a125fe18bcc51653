package search

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/nikbrunner/dropdown/internal/model"
	"github.com/nikbrunner/dropdown/internal/source"
)

// ParseResponse normalizes a remote search response body into a result
// page. The accepted shapes are deliberately tolerant: results may live
// under "data", "items", or "object", or the body may be a bare array;
// pagination metadata may be top-level ("page", "totalPages",
// "total_page") or nested under "pagination". A body without any
// recognized results key degrades to an empty page.
func ParseResponse(raw []byte) source.Page {
	page := source.Page{Page: 1, TotalPages: 1}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return page
	}

	switch v := body.(type) {
	case []any:
		page.Entries = parseEntries(v)
	case map[string]any:
		for _, key := range []string{"data", "items", "object"} {
			if list, ok := v[key].([]any); ok {
				page.Entries = parseEntries(list)
				break
			}
		}
		meta := v
		if nested, ok := v["pagination"].(map[string]any); ok {
			meta = nested
		}
		if n, ok := asInt(meta["page"]); ok {
			page.Page = n
		}
		if n, ok := asInt(meta["totalPages"]); ok {
			page.TotalPages = n
		} else if n, ok := asInt(meta["total_page"]); ok {
			page.TotalPages = n
		}
		if more, ok := meta["more"].(bool); ok {
			page.HasMore = more
		} else if more, ok := meta["hasMore"].(bool); ok {
			page.HasMore = more
		} else {
			page.HasMore = page.Page < page.TotalPages
		}
	}

	if page.TotalPages < 1 {
		page.TotalPages = 1
	}
	return page
}

func parseEntries(list []any) []model.Entry {
	var entries []model.Entry
	for _, raw := range list {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		if children, ok := item["children"].([]any); ok {
			entries = append(entries, model.Entry{
				Label:    asString(firstOf(item, "label", "text")),
				Children: parseEntries(children),
			})
			continue
		}

		entries = append(entries, model.Entry{
			Value:    asString(firstOf(item, "id", "value")),
			Text:     asString(item["text"]),
			Selected: item["selected"] == true,
			Image:    asString(firstOf(item, "image", "img")),
		})
	}
	return entries
}

func firstOf(item map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := item[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
