package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"consultant-backend/internal/note/domain"
	"consultant-backend/internal/note/repository"
)

// VectorIndex indexes note content for semantic search. Implemented by the
// chroma client; nil disables indexing.
type VectorIndex interface {
	UpsertNoteEmbedding(ctx context.Context, noteID, userID, clientName, content string) error
	DeleteNoteEmbedding(ctx context.Context, noteID string) error
	SemanticSearch(ctx context.Context, userID, query string, limit int) ([]string, error)
}

// NoteUsecase defines the interface for meeting note use cases
type NoteUsecase interface {
	CreateNote(userID, clientName, content string, meetingDate time.Time) (*domain.MeetingNote, error)
	GetNote(userID, noteID string) (*domain.MeetingNote, error)
	GetUserNotes(userID string, limit, offset int) ([]*domain.MeetingNote, int64, error)
	UpdateNote(userID, noteID, content string, meetingDate time.Time) (*domain.MeetingNote, error)
	DeleteNote(userID, noteID string) error

	// NotesFor returns the note content for a (user, client) pairing in
	// chronological order, most recent last. An empty slice means there is
	// nothing to synthesize from; it is never an error.
	NotesFor(userID, clientName string) ([]string, error)

	SemanticSearch(userID, query string, limit int) ([]*domain.MeetingNote, error)
}

type noteUsecase struct {
	noteRepo    repository.NoteRepository
	vectorIndex VectorIndex
}

// NewNoteUsecase creates a new instance of noteUsecase
func NewNoteUsecase(noteRepo repository.NoteRepository, vectorIndex VectorIndex) NoteUsecase {
	return &noteUsecase{
		noteRepo:    noteRepo,
		vectorIndex: vectorIndex,
	}
}

func (u *noteUsecase) CreateNote(userID, clientName, content string, meetingDate time.Time) (*domain.MeetingNote, error) {
	if clientName == "" {
		return nil, errors.New("client name is required")
	}
	if meetingDate.IsZero() {
		meetingDate = time.Now()
	}

	note := &domain.MeetingNote{
		UserID:      userID,
		ClientName:  clientName,
		MeetingDate: meetingDate,
		Content:     content,
	}
	if err := u.noteRepo.Create(note); err != nil {
		return nil, err
	}

	u.indexNote(note)
	return note, nil
}

func (u *noteUsecase) GetNote(userID, noteID string) (*domain.MeetingNote, error) {
	note, err := u.noteRepo.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, errors.New("note not found")
	}
	if note.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return note, nil
}

func (u *noteUsecase) GetUserNotes(userID string, limit, offset int) ([]*domain.MeetingNote, int64, error) {
	return u.noteRepo.FindByUser(userID, limit, offset)
}

func (u *noteUsecase) UpdateNote(userID, noteID, content string, meetingDate time.Time) (*domain.MeetingNote, error) {
	note, err := u.GetNote(userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Content = content
	if !meetingDate.IsZero() {
		note.MeetingDate = meetingDate
	}
	if err := u.noteRepo.Update(note); err != nil {
		return nil, err
	}

	u.indexNote(note)
	return note, nil
}

func (u *noteUsecase) DeleteNote(userID, noteID string) error {
	note, err := u.GetNote(userID, noteID)
	if err != nil {
		return err
	}
	if err := u.noteRepo.Delete(note.ID); err != nil {
		return err
	}

	if u.vectorIndex != nil {
		if err := u.vectorIndex.DeleteNoteEmbedding(context.Background(), note.ID); err != nil {
			log.Printf("[Notes] Failed to delete embedding for note %s: %v", note.ID, err)
		}
	}
	return nil
}

func (u *noteUsecase) NotesFor(userID, clientName string) ([]string, error) {
	notes, err := u.noteRepo.FindByUserAndClient(userID, clientName)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(notes))
	for _, note := range notes {
		if note.Content == "" {
			continue
		}
		contents = append(contents, note.Content)
	}
	return contents, nil
}

func (u *noteUsecase) SemanticSearch(userID, query string, limit int) ([]*domain.MeetingNote, error) {
	if u.vectorIndex == nil {
		return nil, errors.New("semantic search not available")
	}
	if limit <= 0 {
		limit = 10
	}

	ids, err := u.vectorIndex.SemanticSearch(context.Background(), userID, query, limit)
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.MeetingNote, 0, len(ids))
	for _, id := range ids {
		note, err := u.noteRepo.FindByID(id)
		if err != nil || note == nil || note.UserID != userID {
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// indexNote upserts the note embedding, best-effort. A failed upsert never
// fails the write path.
func (u *noteUsecase) indexNote(note *domain.MeetingNote) {
	if u.vectorIndex == nil {
		return
	}
	if err := u.vectorIndex.UpsertNoteEmbedding(context.Background(), note.ID, note.UserID, note.ClientName, note.Content); err != nil {
		log.Printf("[Notes] Failed to index note %s: %v", note.ID, err)
	}
}
