package data

import (
	"context"
	"fmt"
	"log"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
	"github.com/go-pg/pg"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS amazon_item (
		asin varchar(64) PRIMARY KEY,
		title text,
		detailpageurl text,
		isbn varchar(64),
		ean varchar(64),
		salesrank integer,
		brand text,
		publisher text,
		manufacturer text,
		mpn text,
		studio text,
		binding text,
		releasedate varchar(32),
		productgroup text,
		producttypename text,
		listpriceamount integer,
		listpricecurrencycode varchar(8),
		listpriceformattedprice varchar(64),
		lowestpriceamount integer,
		lowestpricecurrencycode varchar(8),
		lowestpriceformattedprice varchar(64),
		attributes jsonb,
		customerreviews_iframe text,
		invalid_asin boolean NOT NULL DEFAULT false,
		timestamp timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS amazon_item_participant (
		asin varchar(64) NOT NULL REFERENCES amazon_item(asin) ON DELETE CASCADE,
		position integer NOT NULL,
		type varchar(128) NOT NULL,
		participant text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS amazon_item_image (
		asin varchar(64) NOT NULL REFERENCES amazon_item(asin) ON DELETE CASCADE,
		size varchar(64) NOT NULL,
		url text NOT NULL,
		height integer,
		width integer,
		PRIMARY KEY (asin, size)
	)`,
	`CREATE TABLE IF NOT EXISTS amazon_item_image_gallery (
		asin varchar(64) NOT NULL REFERENCES amazon_item(asin) ON DELETE CASCADE,
		size varchar(64) NOT NULL,
		position integer NOT NULL,
		category varchar(64),
		url text NOT NULL,
		height integer,
		width integer,
		PRIMARY KEY (asin, size, position)
	)`,
	`CREATE TABLE IF NOT EXISTS amazon_item_editorial_review (
		asin varchar(64) NOT NULL REFERENCES amazon_item(asin) ON DELETE CASCADE,
		position integer NOT NULL,
		source text,
		content text
	)`,
}

// PGStore stores items in postgres
type PGStore struct {
	db *pg.DB
}

func NewPGStore(db *pg.DB) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the item tables when they are missing
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := s.db.WithContext(ctx).Exec(ddl); err != nil {
			return fmt.Errorf("PG_SCHEMA_ERR: %v", err)
		}
	}
	return nil
}

// Save deletes the previous record and inserts the new one in a single
// transaction. Child rows go with the item through ON DELETE CASCADE.
func (s *PGStore) Save(ctx context.Context, item *types.ProductItem) error {
	if item == nil || item.ASIN == "" {
		return fmt.Errorf("PG_SAVE_ERR: item without asin")
	}
	rec, err := NewItemRecord(item)
	if err != nil {
		return fmt.Errorf("PG_SAVE_ERR: (asin %s) %v", item.ASIN, err)
	}

	err = s.db.WithContext(ctx).RunInTransaction(func(tx *pg.Tx) error {
		if _, err := tx.Model((*ItemRow)(nil)).Where("asin = ?", item.ASIN).Delete(); err != nil {
			return err
		}
		if _, err := tx.Model(&rec.Item).Insert(); err != nil {
			return err
		}
		if len(rec.Participants) > 0 {
			if _, err := tx.Model(&rec.Participants).Insert(); err != nil {
				return err
			}
		}
		if len(rec.Images) > 0 {
			if _, err := tx.Model(&rec.Images).Insert(); err != nil {
				return err
			}
		}
		if len(rec.Gallery) > 0 {
			if _, err := tx.Model(&rec.Gallery).Insert(); err != nil {
				return err
			}
		}
		if len(rec.Reviews) > 0 {
			if _, err := tx.Model(&rec.Reviews).Insert(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("PG_SAVE_ERR: (asin %s) %v\n", item.ASIN, err)
		return fmt.Errorf("PG_SAVE_ERR: (asin %s) %v", item.ASIN, err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, asin string) (*types.ProductItem, error) {
	db := s.db.WithContext(ctx)
	rec := &ItemRecord{}
	err := db.Model(&rec.Item).Where("asin = ?", asin).Select()
	if err == pg.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("PG_GET_ERR: (asin %s) %v", asin, err)
	}

	children := []interface{}{&rec.Participants, &rec.Images, &rec.Gallery, &rec.Reviews}
	for _, model := range children {
		if err := db.Model(model).Where("asin = ?", asin).Select(); err != nil {
			return nil, fmt.Errorf("PG_GET_ERR: (asin %s) %v", asin, err)
		}
	}
	return rec.ProductItem(), nil
}

func (s *PGStore) MarkInvalid(ctx context.Context, asin string) (bool, error) {
	res, err := s.db.WithContext(ctx).Model((*ItemRow)(nil)).
		Set("invalid_asin = ?", true).
		Where("asin = ?", asin).
		Update()
	if err != nil {
		return false, fmt.Errorf("PG_MARK_INVALID_ERR: (asin %s) %v", asin, err)
	}
	return res.RowsAffected() > 0, nil
}

func (s *PGStore) Delete(ctx context.Context, asin string) error {
	_, err := s.db.WithContext(ctx).Model((*ItemRow)(nil)).Where("asin = ?", asin).Delete()
	if err != nil {
		return fmt.Errorf("PG_DELETE_ERR: (asin %s) %v", asin, err)
	}
	return nil
}
