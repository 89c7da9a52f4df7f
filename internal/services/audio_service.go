package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// AudioService owns audio note records and their listing
type AudioService interface {
	Create(ctx context.Context, userID int, req models.CreateAudioNoteRequest) (models.AudioNoteView, error)
	List(ctx context.Context, viewerID int, opts ListOptions) ([]models.AudioNoteView, string, error)
	Delete(ctx context.Context, id, actorID int) error
}

type audioService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewAudioService creates an AudioService
func NewAudioService(st store.Store, adminEmails []string, logger *zap.Logger) AudioService {
	return &audioService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *audioService) Create(ctx context.Context, userID int, req models.CreateAudioNoteRequest) (models.AudioNoteView, error) {
	if err := validateRequest(&req); err != nil {
		return models.AudioNoteView{}, err
	}
	var view models.AudioNoteView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		author := snap.UserByID(userID)
		if author == nil {
			return notFoundf("user %d", userID)
		}
		snap.Counters.Audios++
		note := models.AudioNote{
			ID:        snap.Counters.Audios,
			UserID:    userID,
			AudioURL:  req.AudioURL,
			Caption:   strings.TrimSpace(req.Caption),
			CreatedAt: time.Now().UTC(),
		}
		snap.AudioNotes = append(snap.AudioNotes, note)
		view = audioNoteView(&note, author)
		return nil
	})
	return view, err
}

func (s *audioService) List(ctx context.Context, viewerID int, opts ListOptions) ([]models.AudioNoteView, string, error) {
	views := []models.AudioNoteView{}
	var next string
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		items := make([]models.ContentItem, 0, len(snap.AudioNotes))
		for i := range snap.AudioNotes {
			items = append(items, &snap.AudioNotes[i])
		}
		selected, cursor, err := filterContent(snap, viewerID, items, opts, nil)
		if err != nil {
			return err
		}
		next = cursor
		for _, item := range selected {
			note, ok := item.(*models.AudioNote)
			if !ok {
				continue
			}
			author := snap.UserByID(note.UserID)
			if author == nil {
				continue
			}
			views = append(views, audioNoteView(note, author))
		}
		return nil
	})
	return views, next, err
}

func (s *audioService) Delete(ctx context.Context, id, actorID int) error {
	return s.store.Update(ctx, func(snap *store.Snapshot) error {
		note := snap.AudioNoteByID(id)
		if note == nil {
			return notFoundf("audio note %d", id)
		}
		if note.UserID != actorID && !isAdminUser(snap, actorID, s.adminEmails) {
			return forbiddenf("user %d cannot delete audio note %d", actorID, id)
		}
		for i := range snap.AudioNotes {
			if snap.AudioNotes[i].ID == id {
				snap.AudioNotes = append(snap.AudioNotes[:i], snap.AudioNotes[i+1:]...)
				break
			}
		}
		return nil
	})
}

func audioNoteView(note *models.AudioNote, author *models.User) models.AudioNoteView {
	return models.AudioNoteView{
		ID:        note.ID,
		AudioURL:  note.AudioURL,
		Caption:   note.Caption,
		CreatedAt: note.CreatedAt,
		Author:    author.Summary(),
	}
}
