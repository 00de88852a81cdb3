package ratelimit

import (
	"bytes"
	"context"
	"testing"
	"time"

	"followback/internal/domain/quota"
	"followback/internal/errcodes"

	"github.com/stretchr/testify/assert"
)

func Test_execute(t *testing.T) {
	fixed := time.Date(2022, 12, 1, 10, 0, 0, 0, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	defer func() { now = old }()

	t.Run("renders every resource", func(t *testing.T) {
		r := &quota.MockReader{State: &quota.State{
			Core:   quota.Resource{Limit: 5000, Remaining: 4200, Reset: fixed.Add(time.Hour)},
			Search: quota.Resource{Limit: 30, Remaining: 30, Reset: fixed.Add(time.Minute)},
		}}
		buf := &bytes.Buffer{}

		s, err := execute(context.Background(), quota.NewMonitor(r), buf)
		assert.NoError(t, err)
		assert.Equal(t, 4200, s.Core.Remaining)
		assert.Contains(t, buf.String(), "4,200")
		assert.Contains(t, buf.String(), "search")
		assert.NotContains(t, buf.String(), "graphql")
		assert.NotContains(t, buf.String(), "quota is low")
	})

	t.Run("warns about low core quota", func(t *testing.T) {
		r := &quota.MockReader{State: &quota.State{
			Core:   quota.Resource{Limit: 5000, Remaining: 12, Reset: fixed.Add(time.Hour)},
			Search: quota.Resource{Limit: 30, Remaining: 30},
		}}
		buf := &bytes.Buffer{}

		_, err := execute(context.Background(), quota.NewMonitor(r), buf)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "core quota is low: 12 requests left")
	})

	t.Run("reader error", func(t *testing.T) {
		r := &quota.MockReader{ErrorValue: errcodes.New(errcodes.AuthRejected)}

		_, err := execute(context.Background(), quota.NewMonitor(r), &bytes.Buffer{})
		assert.Equal(t, errcodes.AuthRejected, errcodes.KindOf(err))
	})
}
