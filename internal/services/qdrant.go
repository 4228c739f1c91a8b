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

// QuestionMemory remembers every question the model has asked so future
// generation calls can steer away from near-duplicates.
type QuestionMemory interface {
	InitCollection() error
	RememberQuestion(ctx context.Context, interviewID, jobRole, question string, embedding []float32) error
	SimilarQuestions(ctx context.Context, jobRole string, queryEmbedding []float32, limit int) ([]RememberedQuestion, error)
	Forget(ctx context.Context, interviewID string) error
}

type RememberedQuestion struct {
	InterviewID string
	JobRole     string
	Question    string
	Score       float32
}

type questionMemory struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQuestionMemory(urlStr, apiKey, collectionName string) (QuestionMemory, error) {
	// The config carries an HTTP-style URL; the client speaks gRPC.
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

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

	return &questionMemory{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QuestionMemory.
func (q *questionMemory) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Question memory collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// RememberQuestion implements QuestionMemory.
func (q *questionMemory) RememberQuestion(ctx context.Context, interviewID, jobRole, question string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"interview_id": interviewID,
			"job_role":     jobRole,
			"question":     question,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}

	return nil
}

// SimilarQuestions implements QuestionMemory.
func (q *questionMemory) SimilarQuestions(ctx context.Context, jobRole string, queryEmbedding []float32, limit int) ([]RememberedQuestion, error) {
	var filter *qdrant.Filter
	if jobRole != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_role", jobRole),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	var results []RememberedQuestion
	for _, point := range searchResult {
		payload := point.Payload

		result := RememberedQuestion{
			Score: point.Score,
		}

		if id, ok := payload["interview_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				result.InterviewID = val.StringValue
			}
		}

		if role, ok := payload["job_role"]; ok {
			if val, ok := role.GetKind().(*qdrant.Value_StringValue); ok {
				result.JobRole = val.StringValue
			}
		}

		if question, ok := payload["question"]; ok {
			if val, ok := question.GetKind().(*qdrant.Value_StringValue); ok {
				result.Question = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// Forget implements QuestionMemory.
func (q *questionMemory) Forget(ctx context.Context, interviewID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("interview_id", interviewID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to forget questions: %w", err)
	}

	return nil
}
