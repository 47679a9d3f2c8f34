package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/domain/entity"
)

// indexListing mirrors the listing into Elasticsearch for full-text
// search. Indexing is best-effort; the write path never fails on it.
func (f *Facade) indexListing(ctx context.Context, l *entity.Listing) {
	if f.ES == nil || f.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          l.ID,
		"title":       l.Title,
		"description": l.Description,
		"price":       l.Price,
		"owner":       l.OwnerID,
		"updated_at":  l.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: f.ESIndex, DocumentID: l.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, f.ES)
	if err != nil {
		f.logError(err, "index listing", logrus.Fields{"place_id": l.ID})
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && f.Logger != nil {
		f.Logger.WithFields(logrus.Fields{"status": res.Status(), "place_id": l.ID}).Warn("es index response error")
	}
}

// SearchListings runs a multi_match query over title and description.
// Returns an empty slice when search is not configured.
func (f *Facade) SearchListings(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if f.ES == nil || f.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := f.ES.Search(
		f.ES.Search.WithContext(c),
		f.ES.Search.WithIndex(f.ESIndex),
		f.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
