// Package engine implements the content engine: post creation and deletion,
// engagement actions (like, retweet, bookmark, comment) with their
// notification side effects, the follow graph, and the read-side feed
// assembly with author projection.
//
// The engine performs no in-process coordination between requests;
// correctness under concurrency relies on the store's per-document
// atomicity. Multi-document effects (for example a like touching the post,
// the liking user and a notification) are not transactional, matching the
// storage model this system targets.
package engine

import (
	"time"

	"twyster/media"
	"twyster/store"
)

type Engine struct {
	store *store.Store
	media media.Store
	now   func() int64
}

func New(s *store.Store, m media.Store) *Engine {
	return &Engine{
		store: s,
		media: m,
		now:   func() int64 { return time.Now().Unix() },
	}
}
