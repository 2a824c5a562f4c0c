package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"

	bolt "go.etcd.io/bbolt"
)

const postsBktName = "posts"

// Bolt is a storage that uses BoltDB as a backend.
type Bolt struct {
	db *bolt.DB
}

// NewBolt creates new Bolt storage.
func NewBolt(dir string) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "posts.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{postsBktName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create top-level bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Put puts post to storage, overwriting the post with the same ID.
func (b *Bolt) Put(_ context.Context, p Post) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(postsBktName))

		bts, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal post: %w", err)
		}

		if err := bkt.Put([]byte(p.ID), bts); err != nil {
			return fmt.Errorf("put post to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	return nil
}

// List returns posts from storage, newest first.
func (b *Bolt) List(_ context.Context, req ListRequest) ([]Post, error) {
	var result []Post
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(postsBktName))
		err := bkt.ForEach(func(k, v []byte) error {
			var p Post
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("unmarshal post %s: %w", k, err)
			}
			if req.Topic != "" && p.Topic != req.Topic {
				return nil
			}
			result = append(result, p)
			return nil
		})
		if err != nil {
			return fmt.Errorf("foreach: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Get returns post from storage.
func (b *Bolt) Get(_ context.Context, id string) (p Post, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(postsBktName))

		bts := bkt.Get([]byte(id))
		if bts == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(bts, &p); err != nil {
			return fmt.Errorf("unmarshal post: %w", err)
		}

		return nil
	})
	if err != nil {
		return Post{}, fmt.Errorf("view storage: %w", err)
	}

	return p, nil
}

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }
