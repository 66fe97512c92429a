package service

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/domain/policy"
	"keepnotes/internal/infrastructure/aws/storage"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindVisible(userID int) ([]*entity.Note, error)
	FindVisibleByID(userID, noteID int) (*entity.Note, error)
	FindPinned(userID int) ([]*entity.Note, error)
	FindArchived(userID int) ([]*entity.Note, error)
	FindTrashed(userID int) ([]*entity.Note, error)
	FindTrashedByID(userID, noteID int) (*entity.Note, error)
	FindOwnedByID(userID, noteID int) (*entity.Note, error)
	Search(userID int, terms []string) ([]*entity.Note, error)
	Save(note *entity.Note) error
	ReplaceLabels(note *entity.Note, labels []entity.Label) error
	ReplaceCollaborators(note *entity.Note, collaborators []entity.Account) error
}

type LabelResolver interface {
	FindByName(name string) (*entity.Label, error)
}

type CollaboratorResolver interface {
	FindByEmail(email string) (*entity.Account, error)
}

type NoteCache interface {
	Get(ctx context.Context, userID, noteID int) (string, error)
	Set(ctx context.Context, userID, noteID int, payload string) error
	Delete(ctx context.Context, userID, noteID int) error
}

type NoteService struct {
	NoteRepo   NoteRepository
	Labels     LabelResolver
	Accounts   CollaboratorResolver
	Cache      NoteCache
	S3         storage.S3Client
	Validate   *validator.Validate
	NotePolicy *policy.NotePolicy
}

func NewNoteService(
	noteRepo NoteRepository,
	labels LabelResolver,
	accounts CollaboratorResolver,
	cache NoteCache,
	s3 storage.S3Client,
	validate *validator.Validate,
	notePolicy *policy.NotePolicy,
) *NoteService {
	return &NoteService{
		NoteRepo:   noteRepo,
		Labels:     labels,
		Accounts:   accounts,
		Cache:      cache,
		S3:         s3,
		Validate:   validate,
		NotePolicy: notePolicy,
	}
}

func (n *NoteService) GetNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	return n.list(actor, n.NoteRepo.FindVisible)
}

func (n *NoteService) GetPinnedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	return n.list(actor, n.NoteRepo.FindPinned)
}

func (n *NoteService) GetArchivedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	return n.list(actor, n.NoteRepo.FindArchived)
}

func (n *NoteService) GetTrashedNotes(actor *entity.Account) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	return n.list(actor, n.NoteRepo.FindTrashed)
}

// SearchNotes splits the query on whitespace; every term must match
// title or description, terms are combined with AND.
func (n *NoteService) SearchNotes(actor *entity.Account, query string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	terms := strings.Fields(query)
	notes, err := n.NoteRepo.Search(actor.ID, terms)
	if err != nil {
		log.Errorf("failed to search notes: %v", err)
		return nil, apierror.UnexpectedError
	}
	return toNoteResponses(notes), nil
}

// GetNote serves the note detail, short-circuiting through the response
// cache. A cache miss falls back to the store and repopulates the entry.
func (n *NoteService) GetNote(ctx context.Context, actor *entity.Account, noteID int) (*contract.NoteResponse, apierror.ErrorResponse) {
	cached, err := n.Cache.Get(ctx, actor.ID, noteID)
	if err != nil {
		// Treat a cache failure like a miss; the store still answers.
		log.Errorf("note cache read failed: %v", err)
	}
	if cached != "" {
		var resp contract.NoteResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		log.Warnf("dropping corrupt cache entry for note %d: %v", noteID, err)
	}

	note, err := n.NoteRepo.FindVisibleByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.UnexpectedError
	}
	if note == nil {
		return nil, apierror.NoteNotFoundError
	}

	resp := toNoteResponse(note)
	n.populateCache(ctx, actor.ID, note.ID, resp)
	return resp, nil
}

// GetTrashedNote fetches a single note from the trash, owner only.
func (n *NoteService) GetTrashedNote(actor *entity.Account, noteID int) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindTrashedByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch trashed note: %v", err)
		return nil, apierror.UnexpectedError
	}
	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *NoteService) CreateNote(ctx context.Context, actor *entity.Account, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := n.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	labels, apierr := n.resolveLabels(req.Labels)
	if apierr != nil {
		return nil, apierr
	}

	collaborators, apierr := n.resolveCollaborators(req.Collaborators)
	if apierr != nil {
		return nil, apierr
	}

	reminder, apierr := parseReminder(req.Reminder)
	if apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	note := &entity.Note{
		UserID:        actor.ID,
		Title:         req.Title,
		Description:   req.Description,
		Color:         req.Color,
		Reminder:      reminder,
		Labels:        labels,
		Collaborators: collaborators,
		IsPinned:      req.IsPinned,
		IsArchived:    req.IsArchived,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if note.Color == "" {
		note.Color = "#00F0FF"
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.UnexpectedError
	}

	log.Infof("created note %d for account %d", note.ID, actor.ID)
	return toNoteResponse(note), nil
}

func (n *NoteService) UpdateNote(ctx context.Context, actor *entity.Account, noteID int, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := n.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	note, err := n.NoteRepo.FindOwnedByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.UnexpectedError
	}
	if apierr := n.NotePolicy.CanModify(note, actor); apierr != nil {
		return nil, apierr
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = *req.Description
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.Reminder != nil {
		reminder, apierr := parseReminder(req.Reminder)
		if apierr != nil {
			return nil, apierr
		}
		note.Reminder = reminder
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}

	if req.Labels != nil {
		labels, apierr := n.resolveLabels(req.Labels)
		if apierr != nil {
			return nil, apierr
		}
		if err := n.NoteRepo.ReplaceLabels(note, labels); err != nil {
			log.Errorf("failed to replace labels: %v", err)
			return nil, apierror.UnexpectedError
		}
		note.Labels = labels
	}
	if req.Collaborators != nil {
		collaborators, apierr := n.resolveCollaborators(req.Collaborators)
		if apierr != nil {
			return nil, apierr
		}
		if err := n.NoteRepo.ReplaceCollaborators(note, collaborators); err != nil {
			log.Errorf("failed to replace collaborators: %v", err)
			return nil, apierror.UnexpectedError
		}
		note.Collaborators = collaborators
	}

	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.UnexpectedError
	}

	resp := toNoteResponse(note)
	n.populateCache(ctx, actor.ID, note.ID, resp)
	return resp, nil
}

// DeleteNote soft-deletes: the note moves to the trash and its cached
// detail entry is dropped. Deleting an already trashed note is a 404.
func (n *NoteService) DeleteNote(ctx context.Context, actor *entity.Account, noteID int) apierror.ErrorResponse {
	note, err := n.NoteRepo.FindOwnedByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return apierror.UnexpectedError
	}
	if apierr := n.NotePolicy.CanModify(note, actor); apierr != nil {
		return apierr
	}

	note.SoftDelete()
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to trash note: %v", err)
		return apierror.UnexpectedError
	}

	if err := n.Cache.Delete(ctx, actor.ID, note.ID); err != nil {
		log.Errorf("failed to drop cache entry for note %d: %v", note.ID, err)
	}

	log.Infof("trashed note %d for account %d", note.ID, actor.ID)
	return nil
}

// AttachImage uploads a note image to S3 and stores the object key on
// the note, replacing (and removing) any previous image.
func (n *NoteService) AttachImage(ctx context.Context, actor *entity.Account, noteID int, fileHeader *multipart.FileHeader) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindOwnedByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch note: %v", err)
		return nil, apierror.UnexpectedError
	}
	if apierr := n.NotePolicy.CanModify(note, actor); apierr != nil {
		return nil, apierr
	}

	if fileHeader.Size > contract.MaxNoteImageSizeBytes {
		return nil, apierror.NewSimple(400, "Image exceeds the %d byte limit", contract.MaxNoteImageSizeBytes)
	}

	ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidNoteImageTypes)
	if !ok {
		return nil, apierror.NewInvalidFileExtError(ext)
	}

	data, apierr := readUpload(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	key, err := n.S3.UploadFile(data, uuid.NewString()+ext)
	if err != nil {
		log.Errorf("failed to upload note image: %v", err)
		return nil, apierror.UnexpectedError
	}

	if note.ImageKey != "" {
		if err := n.S3.DeleteFile(note.ImageKey); err != nil {
			log.Errorf("failed to delete previous image %s: %v", note.ImageKey, err)
		}
	}

	note.ImageKey = key
	note.UpdatedAt = utils.NowUTC()
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to store image key: %v", err)
		return nil, apierror.UnexpectedError
	}

	resp := toNoteResponse(note)
	n.populateCache(ctx, actor.ID, note.ID, resp)
	return resp, nil
}

func (n *NoteService) list(actor *entity.Account, fetch func(int) ([]*entity.Note, error)) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := fetch(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.UnexpectedError
	}
	return toNoteResponses(notes), nil
}

// resolveLabels maps label names to records; any unknown name fails the
// whole operation.
func (n *NoteService) resolveLabels(names []string) ([]entity.Label, apierror.ErrorResponse) {
	labels := make([]entity.Label, 0, len(names))
	for _, name := range names {
		label, err := n.Labels.FindByName(name)
		if err != nil {
			log.Errorf("failed to resolve label %q: %v", name, err)
			return nil, apierror.UnexpectedError
		}
		if label == nil {
			return nil, apierror.LabelRefNotFoundError
		}
		labels = append(labels, *label)
	}
	return labels, nil
}

func (n *NoteService) resolveCollaborators(emails []string) ([]entity.Account, apierror.ErrorResponse) {
	collaborators := make([]entity.Account, 0, len(emails))
	for _, email := range emails {
		account, err := n.Accounts.FindByEmail(email)
		if err != nil {
			log.Errorf("failed to resolve collaborator %q: %v", email, err)
			return nil, apierror.UnexpectedError
		}
		if account == nil {
			return nil, apierror.CollaboratorNotFoundError
		}
		collaborators = append(collaborators, *account)
	}
	return collaborators, nil
}

func (n *NoteService) populateCache(ctx context.Context, userID, noteID int, resp *contract.NoteResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to serialize note %d for cache: %v", noteID, err)
		return
	}
	if err := n.Cache.Set(ctx, userID, noteID, string(payload)); err != nil {
		log.Errorf("failed to populate cache for note %d: %v", noteID, err)
	}
}

func parseReminder(raw *string) (*time.Time, apierror.ErrorResponse) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, apierror.NewSimple(400, "Reminder must be an RFC 3339 timestamp")
	}
	utc := parsed.UTC()
	return &utc, nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	labels := make([]string, len(note.Labels))
	for i, label := range note.Labels {
		labels[i] = label.Name
	}

	collaborators := make([]string, len(note.Collaborators))
	for i, collaborator := range note.Collaborators {
		collaborators[i] = collaborator.Email
	}

	var reminder *string
	if note.Reminder != nil {
		formatted := note.Reminder.UTC().Format(time.RFC3339)
		reminder = &formatted
	}

	return &contract.NoteResponse{
		ID:            note.ID,
		UserID:        note.UserID,
		Title:         note.Title,
		Description:   note.Description,
		Color:         note.Color,
		Reminder:      reminder,
		ImageKey:      note.ImageKey,
		Labels:        labels,
		Collaborators: collaborators,
		IsPinned:      note.IsPinned,
		IsArchived:    note.IsArchived,
		IsTrashed:     note.IsTrashed,
		CreatedAt:     utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(note.UpdatedAt),
	}
}

func toNoteResponses(notes []*entity.Note) []*contract.NoteResponse {
	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open upload: %v", err)
		return nil, apierror.UnexpectedError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read upload: %v", err)
		return nil, apierror.UnexpectedError
	}
	return data, nil
}
