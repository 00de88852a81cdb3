package relation

import "context"

// pageIterator walks a page-numbered collection, starting at page 1, until
// the remote side returns an empty page.
type pageIterator[T any] struct {
	fetch   func(ctx context.Context, page int) ([]T, error)
	page    int
	hasNext bool
}

func newPageIterator[T any](fetch func(ctx context.Context, page int) ([]T, error)) *pageIterator[T] {
	return &pageIterator[T]{
		fetch:   fetch,
		page:    1,
		hasNext: true,
	}
}

func (i *pageIterator[T]) HasNext() bool {
	return i.hasNext
}

// Page returns the number of the page the next call to Next will request.
func (i *pageIterator[T]) Page() int {
	return i.page
}

func (i *pageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if !i.hasNext {
		return nil, nil
	}

	list, err := i.fetch(ctx, i.page)
	if err != nil {
		i.hasNext = false
		return nil, err
	}

	if len(list) == 0 {
		i.hasNext = false
		return nil, nil
	}

	i.page++

	return list, nil
}
