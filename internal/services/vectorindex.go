package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorIndexService maintains a nearest-neighbor index over embedded
// resume chunks. It is fed by the offline indexing tool, not by the
// per-application scoring path.
type VectorIndexService interface {
	InitCollection() error
	IndexResumeChunk(ctx context.Context, applicationID, applicantName, chunk string, embedding []float32) error
	FindTopMatches(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeMatch, error)
	RemoveApplication(ctx context.Context, applicationID string) error
}

type ResumeMatch struct {
	ApplicationID string
	ApplicantName string
	Score         float32
	Text          string
}

type vectorIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewVectorIndexService(urlStr, apiKey, collectionName string) (VectorIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embeddingDimension,
	}, nil
}

// InitCollection implements VectorIndexService.
func (v *vectorIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Resume index collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// IndexResumeChunk implements VectorIndexService.
func (v *vectorIndexService) IndexResumeChunk(ctx context.Context, applicationID, applicantName, chunk string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"application_id": applicationID,
			"applicant":      applicantName,
			"text":           chunk,
		}),
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindTopMatches implements VectorIndexService.
func (v *vectorIndexService) FindTopMatches(ctx context.Context, queryEmbedding []float32, limit int) ([]ResumeMatch, error) {
	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var matches []ResumeMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := ResumeMatch{
			Score: point.Score,
		}

		if appID, ok := payload["application_id"]; ok {
			if val, ok := appID.GetKind().(*qdrant.Value_StringValue); ok {
				match.ApplicationID = val.StringValue
			}
		}

		if applicant, ok := payload["applicant"]; ok {
			if val, ok := applicant.GetKind().(*qdrant.Value_StringValue); ok {
				match.ApplicantName = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Text = val.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// RemoveApplication implements VectorIndexService.
func (v *vectorIndexService) RemoveApplication(ctx context.Context, applicationID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("application_id", applicationID),
		},
	}

	_, err := v.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: v.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to remove application from index: %w", err)
	}

	return nil
}
