package search

import "testing"

func TestParseResponse_ResultKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"data key", `{"data":[{"id":"1","text":"Apple"}]}`},
		{"items key", `{"items":[{"id":"1","text":"Apple"}]}`},
		{"object key", `{"object":[{"id":"1","text":"Apple"}]}`},
		{"bare array", `[{"id":"1","text":"Apple"}]`},
		{"value instead of id", `{"data":[{"value":"1","text":"Apple"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParseResponse([]byte(tt.body))
			if len(page.Entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(page.Entries))
			}
			if page.Entries[0].Value != "1" || page.Entries[0].Text != "Apple" {
				t.Errorf("unexpected entry: %+v", page.Entries[0])
			}
		})
	}
}

func TestParseResponse_NumericIDs(t *testing.T) {
	page := ParseResponse([]byte(`{"data":[{"id":7,"text":"Seven"}]}`))
	if len(page.Entries) != 1 || page.Entries[0].Value != "7" {
		t.Errorf("expected numeric id stringified, got %+v", page.Entries)
	}
}

func TestParseResponse_Groups(t *testing.T) {
	page := ParseResponse([]byte(`{"data":[
		{"label":"Fruits","children":[{"id":"1","text":"Apple"},{"id":"2","text":"Banana"}]}
	]}`))

	if len(page.Entries) != 1 || !page.Entries[0].IsGroup() {
		t.Fatalf("expected one group entry, got %+v", page.Entries)
	}
	if page.Entries[0].Label != "Fruits" || len(page.Entries[0].Children) != 2 {
		t.Errorf("unexpected group: %+v", page.Entries[0])
	}
}

func TestParseResponse_PaginationVariants(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantPage   int
		wantTotal  int
		wantMore   bool
	}{
		{"top level camel", `{"data":[],"page":2,"totalPages":5}`, 2, 5, true},
		{"top level snake", `{"data":[],"page":5,"total_page":5}`, 5, 5, false},
		{"nested pagination", `{"data":[],"pagination":{"page":1,"totalPages":3}}`, 1, 3, true},
		{"explicit more flag", `{"data":[],"pagination":{"page":3,"totalPages":3,"more":true}}`, 3, 3, true},
		{"hasMore flag", `{"data":[],"hasMore":true}`, 1, 1, true},
		{"page as string", `{"data":[],"page":"2","totalPages":"4"}`, 2, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParseResponse([]byte(tt.body))
			if page.Page != tt.wantPage || page.TotalPages != tt.wantTotal || page.HasMore != tt.wantMore {
				t.Errorf("got page=%d total=%d more=%v, want %d/%d/%v",
					page.Page, page.TotalPages, page.HasMore,
					tt.wantPage, tt.wantTotal, tt.wantMore)
			}
		})
	}
}

func TestParseResponse_MalformedDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{broken`},
		{"no recognized key", `{"results":[{"id":"1"}]}`},
		{"scalar body", `42`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParseResponse([]byte(tt.body))
			if len(page.Entries) != 0 {
				t.Errorf("expected empty entries, got %+v", page.Entries)
			}
			if page.TotalPages < 1 {
				t.Errorf("total pages must stay at least 1, got %d", page.TotalPages)
			}
		})
	}
}
