package relation

import (
	"context"
	"fmt"
)

// MockPageLister serves pages from memory. Pages[kind][i] is page i+1.
type MockPageLister struct {
	Pages    map[Kind][][]Identity
	Failures map[Kind]map[int]error
	Requests []string
}

func (m *MockPageLister) ListRelationPage(ctx context.Context, subject Identity, kind Kind, page, perPage int) ([]Identity, error) {
	m.Requests = append(m.Requests, fmt.Sprintf("%s/%s?page=%d&per_page=%d", subject, kind, page, perPage))

	if err, ok := m.Failures[kind][page]; ok {
		return nil, err
	}

	pages := m.Pages[kind]
	if page-1 >= len(pages) {
		return []Identity{}, nil
	}

	return pages[page-1], nil
}

type MockQuotaChecker struct {
	Remaining  int
	ErrorValue error
	Calls      int
}

func (m *MockQuotaChecker) CoreRemaining(ctx context.Context) (int, error) {
	m.Calls++

	return m.Remaining, m.ErrorValue
}

type RecordingObserver struct {
	Loaded []int
	Low    []int
}

func (o *RecordingObserver) PageLoaded(kind Kind, page, total int) {
	o.Loaded = append(o.Loaded, total)
}

func (o *RecordingObserver) LowQuota(kind Kind, remaining int) {
	o.Low = append(o.Low, remaining)
}

// GeneratePages builds n identities named prefix0..prefixN split into pages.
func GeneratePages(prefix string, n, pageSize int) [][]Identity {
	var pages [][]Identity
	var page []Identity
	for i := 0; i < n; i++ {
		page = append(page, Identity(fmt.Sprintf("%s%d", prefix, i)))
		if len(page) == pageSize {
			pages = append(pages, page)
			page = nil
		}
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}

	return pages
}
