package matchsrv

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ray3n-Hamd1/kariera/internal/ai/embeddings"
	"github.com/Ray3n-Hamd1/kariera/matching"
	"github.com/Ray3n-Hamd1/kariera/pkg/logx"
	"github.com/Ray3n-Hamd1/kariera/pkg/textsplit"
	"github.com/Ray3n-Hamd1/kariera/posting"
)

// Ingester chunks job postings, embeds each chunk and upserts the resulting
// vector records. The index is append-only: records for postings that later
// disappear from the feed are not removed here. The index is also never
// locked, so a concurrent query may observe a partially-ingested posting;
// that relaxation is accepted.
type Ingester struct {
	splitter *textsplit.Splitter
	embedder embeddings.Provider
	store    matching.VectorStore
}

// NewIngester creates an ingestion pipeline.
func NewIngester(splitter *textsplit.Splitter, embedder embeddings.Provider, store matching.VectorStore) *Ingester {
	return &Ingester{
		splitter: splitter,
		embedder: embedder,
		store:    store,
	}
}

// Ingest embeds and stores the given postings. Chunk order and embedding
// order are kept aligned per posting: record i carries chunk i's text and
// chunk i's vector.
func (in *Ingester) Ingest(ctx context.Context, postings []*posting.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}

	var records []matching.VectorRecord
	for _, p := range postings {
		postingRecords, err := in.buildRecords(ctx, p)
		if err != nil {
			return err
		}
		records = append(records, postingRecords...)
	}

	logx.Infof("Generated %d vector records for %d postings", len(records), len(postings))

	if err := in.store.Upsert(ctx, records); err != nil {
		return err
	}

	logx.Infof("Successfully stored %d job vectors", len(records))
	return nil
}

func (in *Ingester) buildRecords(ctx context.Context, p *posting.JobPosting) ([]matching.VectorRecord, error) {
	meta := postingMetadata(p)

	combined := combinedDocument(p)
	chunks := in.splitter.Split(combined)
	if len(chunks) == 0 {
		logx.Warnf("Posting %s has no text to embed, skipping", p.ID)
		return nil, nil
	}

	vectors, err := in.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, matching.ErrProviderFailed().WithCause(err).
			WithDetail("operation", "chunk_embedding").
			WithDetail("posting_id", p.ID.String())
	}
	if len(vectors) != len(chunks) {
		return nil, matching.ErrProviderFailed().
			WithDetail("operation", "chunk_embedding").
			WithDetail("posting_id", p.ID.String()).
			WithDetail("reason", fmt.Sprintf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors)))
	}

	records := make([]matching.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		chunkMeta := make(map[string]any, len(meta)+2)
		for k, v := range meta {
			chunkMeta[k] = v
		}
		chunkMeta["chunk_index"] = i
		chunkMeta["chunk_text"] = chunk

		records[i] = matching.VectorRecord{
			ID:       p.ID.String() + "#" + strconv.Itoa(i),
			Values:   vectors[i],
			Model:    in.embedder.Model(),
			Metadata: chunkMeta,
		}
	}
	return records, nil
}

// postingMetadata denormalizes the posting fields a result needs to render.
// The vector-store backend rejects null metadata values, so absent fields
// become empty strings, never nil.
func postingMetadata(p *posting.JobPosting) map[string]any {
	return map[string]any{
		"id":          p.ID.String(),
		"title":       p.Title,
		"company":     p.Company,
		"location":    p.Location,
		"description": p.Description,
		"job_url":     p.JobURL,
		"is_remote":   p.IsRemote,
		"job_type":    string(p.JobType),
		"source":      p.Source,
		"skills":      strings.Join(p.Skills, ", "),
	}
}

// combinedDocument concatenates the posting's scalar text fields into the
// single document that gets chunked.
func combinedDocument(p *posting.JobPosting) string {
	fields := []string{
		p.ID.String(),
		p.Title,
		p.Company,
		p.Location,
		p.Description,
		p.JobURL,
		string(p.JobType),
		strings.Join(p.Skills, " "),
	}

	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.Join(nonEmpty, " ")
}
