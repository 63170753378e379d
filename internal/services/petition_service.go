package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"github.com/petism/backend/internal/models"
	"github.com/petism/backend/internal/repositories"
)

// Notifier dispatches petition lifecycle emails. It receives a snapshot of
// the petition at the moment of the triggering event and must not re-read
// mutable state. Delivery failures are the caller's to log and swallow.
type Notifier interface {
	SendCreationNotice(petition *models.Petition) error
	SendGoalReachedNotice(petition *models.Petition) error
}

// PetitionService governs the petition lifecycle: creation, signature
// application with per-identity dedup, the one-way success latch and its
// notification side effect, comment appends and reactions, and secret-gated
// edit/delete. All serialization is delegated to the repository's atomic
// conditional updates; the service holds no locks.
type PetitionService struct {
	repo     repositories.PetitionRepository
	notifier Notifier
}

// NewPetitionService creates a new PetitionService
func NewPetitionService(repo repositories.PetitionRepository, notifier Notifier) *PetitionService {
	return &PetitionService{repo: repo, notifier: notifier}
}

// Create persists a new petition and sends the creation notice when a
// creator email was supplied. Email is best-effort: a delivery failure is
// logged and the petition is still created.
func (s *PetitionService) Create(ctx context.Context, req *models.CreatePetitionRequest) (*models.Petition, error) {
	petition := &models.Petition{
		Title:            req.Title,
		Content:          req.Content,
		Secret:           req.Secret,
		Image:            req.Image,
		TargetSignatures: req.TargetSignatures,
		CreatorEmail:     req.CreatorEmail,
		SignedBy:         []string{},
		Comments:         []models.Comment{},
	}
	if err := s.repo.CreatePetition(ctx, petition); err != nil {
		return nil, err
	}

	if petition.CreatorEmail != "" {
		if err := s.notifier.SendCreationNotice(petition); err != nil {
			log.Printf("Creation notice for petition %s failed: %v", petition.ID.Hex(), err)
		}
	}
	return petition, nil
}

// Get retrieves a single petition
func (s *PetitionService) Get(ctx context.Context, id string) (*models.Petition, error) {
	petition, err := s.repo.GetPetitionByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return petition, nil
}

// List retrieves all petitions, newest first
func (s *PetitionService) List(ctx context.Context) ([]models.Petition, error) {
	return s.repo.GetAllPetitions(ctx)
}

// Sign applies one signature for identity. The duplicate check and the
// increment happen in a single conditional update in the store. When the new
// count reaches the target, the success latch is flipped with a second
// conditional update; only the request that wins that flip dispatches the
// goal-reached notice, so the notice fires at most once per petition. The
// dispatch runs in a goroutine and never delays or fails the response.
func (s *PetitionService) Sign(ctx context.Context, id, identity string) (*models.SignResult, error) {
	petition, err := s.repo.AddSignature(ctx, id, identity)
	if err != nil {
		return nil, translate(err)
	}

	if !petition.IsSuccessful && petition.SignatureCount >= petition.TargetSignatures {
		crossed, err := s.repo.MarkSuccessful(ctx, id)
		if err != nil {
			// The signature itself is durable; a failed latch update will be
			// retried by the next signature that reaches this branch.
			log.Printf("Success latch update for petition %s failed: %v", id, err)
		}
		petition.IsSuccessful = true
		if crossed && petition.CreatorEmail != "" {
			snapshot := *petition
			go func() {
				if err := s.notifier.SendGoalReachedNotice(&snapshot); err != nil {
					log.Printf("Goal notice for petition %s failed: %v", snapshot.ID.Hex(), err)
				}
			}()
		}
	}

	return &models.SignResult{
		SignatureCount:   petition.SignatureCount,
		TargetSignatures: petition.TargetSignatures,
		IsSuccessful:     petition.IsSuccessful,
		Liked:            true,
	}, nil
}

// AddComment appends a comment to the petition. Text must be non-empty after
// trimming; the repository assigns the comment id and creation time.
func (s *PetitionService) AddComment(ctx context.Context, id, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &models.Comment{Text: text}
	if err := s.repo.AddComment(ctx, id, comment); err != nil {
		return nil, translate(err)
	}
	return comment, nil
}

// ReactToComment increments the like or dislike counter of a comment.
// Reactions are not identity-gated: any caller may react any number of times.
func (s *PetitionService) ReactToComment(ctx context.Context, id, commentID string, kind repositories.ReactionKind) (*models.Comment, error) {
	if kind != repositories.ReactionLike && kind != repositories.ReactionDislike {
		return nil, ErrInvalidReaction
	}

	comment, err := s.repo.ReactToComment(ctx, id, commentID, kind)
	if err != nil {
		return nil, translate(err)
	}
	return comment, nil
}

// Update edits the owner-mutable fields after verifying the secret.
// Overlapping edits are last-write-wins; staleness is not detected.
func (s *PetitionService) Update(ctx context.Context, id, secret string, req *models.UpdatePetitionRequest) (*models.Petition, error) {
	petition, err := s.repo.GetPetitionByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := verifyOwnership(petition, secret); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdatePetition(ctx, id, req.Title, req.Content, req.Image)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

// Delete removes a petition after verifying the secret
func (s *PetitionService) Delete(ctx context.Context, id, secret string) error {
	petition, err := s.repo.GetPetitionByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := verifyOwnership(petition, secret); err != nil {
		return err
	}
	return translate(s.repo.DeletePetition(ctx, id))
}

// verifyOwnership checks the supplied secret against the petition's write
// secret in constant time.
func verifyOwnership(petition *models.Petition, secret string) error {
	if secret == "" {
		return ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(petition.Secret), []byte(secret)) != 1 {
		return ErrForbidden
	}
	return nil
}

// translate maps repository sentinels onto the service error taxonomy
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPetitionNotFound):
		return ErrPetitionNotFound
	case errors.Is(err, repositories.ErrCommentNotFound):
		return ErrCommentNotFound
	case errors.Is(err, repositories.ErrAlreadySigned):
		return ErrAlreadySigned
	default:
		return err
	}
}
