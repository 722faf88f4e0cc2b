package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/telemark/telemark-server/internal/model"
)

const (
	vectorField  = "embedding"
	contentField = "content"
	sourceField  = "source"
)

// Config contains connection parameters for the pre-built index.
type Config struct {
	Address    string
	Username   string
	Password   string
	Database   string
	Collection string
}

var _ model.VectorIndex = (*Index)(nil)

// Index is a search-only view over a pre-built Milvus collection of
// document chunks. The collection is created and populated by an
// external indexing job; this client never writes to it.
type Index struct {
	client     *milvusclient.Client
	collection string
}

// New connects to Milvus and binds to the configured collection.
func New(ctx context.Context, cfg Config) (*Index, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("milvus collection is required")
	}

	c, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to milvus: %w", err)
	}

	return &Index{
		client:     c,
		collection: cfg.Collection,
	}, nil
}

// Close closes the Milvus client connection.
func (i *Index) Close(ctx context.Context) error {
	return i.client.Close(ctx)
}

// Search returns the topK chunks nearest to vector, with their content
// and source document.
func (i *Index) Search(ctx context.Context, vector []float32, topK int) ([]model.Passage, error) {
	loadTask, err := i.client.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(i.collection))
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if err := loadTask.Await(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for collection loading: %w", err)
	}

	results, err := i.client.Search(ctx, milvusclient.NewSearchOption(
		i.collection,
		topK,
		[]entity.Vector{entity.FloatVector(vector)},
	).WithANNSField(vectorField).
		WithSearchParam("nprobe", "16").
		WithOutputFields(contentField, sourceField))
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	if len(results) == 0 {
		return []model.Passage{}, nil
	}

	passages := make([]model.Passage, 0, results[0].ResultCount)
	for idx := 0; idx < results[0].ResultCount; idx++ {
		passage := model.Passage{
			Score: results[0].Scores[idx],
		}

		for _, field := range results[0].Fields {
			col, ok := field.(*column.ColumnVarChar)
			if !ok {
				continue
			}
			switch col.Name() {
			case contentField:
				passage.Content = col.Data()[idx]
			case sourceField:
				passage.Source = col.Data()[idx]
			}
		}

		passages = append(passages, passage)
	}

	return passages, nil
}
