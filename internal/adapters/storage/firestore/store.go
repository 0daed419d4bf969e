package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

const briefsCollection = "project_briefs"

// Store persists project briefs in Firestore. The brief travels as a
// serialized JSON payload next to a few queryable metadata fields, so the
// document schema never has to chase the brief's nested shape.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed brief store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: projectID is required")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) briefsCol() *firestore.CollectionRef {
	return s.client.Collection(briefsCollection)
}

func (s *Store) briefDocRef(id domain.BriefDocumentID) *firestore.DocumentRef {
	return s.briefsCol().Doc(string(id))
}

type briefDoc struct {
	ProjectName string    `firestore:"project_name"`
	GeneratedAt time.Time `firestore:"generated_at"`
	StoredAt    time.Time `firestore:"stored_at"`
	Payload     string    `firestore:"payload"`
}

// StoreBrief implements domain.BriefStore.
func (s *Store) StoreBrief(ctx context.Context, id domain.BriefDocumentID, brief *domain.ProjectBrief) error {
	payload, err := json.Marshal(brief)
	if err != nil {
		return fmt.Errorf("firestore: serializing brief: %w", err)
	}

	doc := briefDoc{
		ProjectName: brief.ProjectName,
		GeneratedAt: brief.GenerationTimestamp,
		StoredAt:    time.Now().UTC(),
		Payload:     string(payload),
	}

	if _, err := s.briefDocRef(id).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore: StoreBrief: %w", err)
	}
	return nil
}

// LoadBrief implements domain.BriefStore.
func (s *Store) LoadBrief(ctx context.Context, id domain.BriefDocumentID) (*domain.ProjectBrief, error) {
	snap, err := s.briefDocRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrBriefNotFound
		}
		return nil, fmt.Errorf("firestore: LoadBrief: %w", err)
	}

	var doc briefDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore: LoadBrief decode: %w", err)
	}

	var brief domain.ProjectBrief
	if err := json.Unmarshal([]byte(doc.Payload), &brief); err != nil {
		return nil, fmt.Errorf("firestore: LoadBrief payload: %w", err)
	}
	return &brief, nil
}

// ListBriefIDs implements domain.BriefStore. Newest first, by stored_at.
func (s *Store) ListBriefIDs(ctx context.Context, limit int) ([]domain.BriefDocumentID, error) {
	q := s.briefsCol().OrderBy("stored_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var ids []domain.BriefDocumentID
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: ListBriefIDs: %w", err)
		}
		ids = append(ids, domain.BriefDocumentID(snap.Ref.ID))
	}
	return ids, nil
}
