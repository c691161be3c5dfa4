package elasticsearch

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// totalCount absorbs both wire shapes of hits.total: the post-7.x object
// {"value": N, "relation": "eq"} and the bare integer older clusters (or
// rest_total_hits_as_int) return.
type totalCount struct {
	Value    int
	Relation string
}

func (t *totalCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Value    int    `json:"value"`
			Relation string `json:"relation"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		t.Value = obj.Value
		t.Relation = obj.Relation
		return nil
	}
	t.Relation = "eq"
	return json.Unmarshal(data, &t.Value)
}

type searchHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total totalCount  `json:"total"`
		Hits  []searchHit `json:"hits"`
	} `json:"hits"`
}

// decodeHit unmarshals a hit's source document. A hit without a source
// yields an id-only product; a document without an id field falls back to
// the numeric document _id.
func decodeHit(hit searchHit) (domain.Product, error) {
	var p domain.Product
	if len(hit.Source) > 0 && !bytes.Equal(bytes.TrimSpace(hit.Source), []byte("null")) {
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			return domain.Product{}, err
		}
	}
	if p.ID == 0 {
		if id, err := strconv.Atoi(hit.ID); err == nil {
			p.ID = id
		}
	}
	return p, nil
}

type termsBucket struct {
	Key      string `json:"key"`
	DocCount int    `json:"doc_count"`
}

type rangeBucket struct {
	Key      string   `json:"key"`
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	DocCount int      `json:"doc_count"`
}

type aggsResponse struct {
	Aggregations struct {
		Categories struct {
			Buckets []termsBucket `json:"buckets"`
		} `json:"categories"`
		Brands struct {
			Buckets []termsBucket `json:"buckets"`
		} `json:"brands"`
		PriceRanges struct {
			Buckets []rangeBucket `json:"buckets"`
		} `json:"price_ranges"`
		RatingRanges struct {
			Buckets []rangeBucket `json:"buckets"`
		} `json:"rating_ranges"`
	} `json:"aggregations"`
}

func shapeTerms(buckets []termsBucket) []domain.Bucket {
	out := make([]domain.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.Bucket{Key: b.Key, Count: b.DocCount})
	}
	return out
}

func shapeRanges(buckets []rangeBucket) []domain.RangeBucket {
	out := make([]domain.RangeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.RangeBucket{
			Key:   b.Key,
			From:  b.From,
			To:    b.To,
			Count: b.DocCount,
		})
	}
	return out
}

func shapeFacets(resp *aggsResponse) *domain.Facets {
	return &domain.Facets{
		Category: shapeTerms(resp.Aggregations.Categories.Buckets),
		Brand:    shapeTerms(resp.Aggregations.Brands.Buckets),
		Price:    shapeRanges(resp.Aggregations.PriceRanges.Buckets),
		Rating:   shapeRanges(resp.Aggregations.RatingRanges.Buckets),
	}
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// decodeError extracts the reason from an Elasticsearch error body, falling
// back to the HTTP status line when the body is not the expected shape.
func decodeError(body io.Reader, status string) string {
	var errResp struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Error.Reason != "" {
		return errResp.Error.Type + ": " + errResp.Error.Reason
	}
	return status
}
