package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs"
	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/pkg/queryparams"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

var validate = validator.New()

// GuestServiceError marks guest directory failures.
type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrGuestNotFound      GuestServiceError = "convidado não encontrado"
	ErrGuestInvalidInput  GuestServiceError = "dados do convidado inválidos"
	ErrGuestSaveFailed    GuestServiceError = "não foi possível guardar o convidado"
	ErrGuestDeleteFailed  GuestServiceError = "não foi possível remover o convidado"
	ErrGuestImportFailed  GuestServiceError = "não foi possível importar a lista"
	ErrGuestExportFailed  GuestServiceError = "não foi possível exportar a lista"
)

// searchMinLength keeps the public search from enumerating the list with
// one-letter queries.
const searchMinLength = 3

// GuestInput is the admin create/update payload.
type GuestInput struct {
	Name        string `validate:"required,min=2,max=150"`
	Category    string `validate:"omitempty,max=50"`
	FamilySide  string `validate:"omitempty,oneof=noivo noiva ambos"`
	MaxAdults   int    `validate:"gte=0,lte=20"`
	MaxChildren int    `validate:"gte=0,lte=20"`
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ExportRow is one line of the guest+RSVP join written by the exporters.
type ExportRow struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	FamilySide     string   `json:"familySide"`
	MaxAdults      int      `json:"maxAdults"`
	MaxChildren    int      `json:"maxChildren"`
	Status         string   `json:"status"`
	Adults         int      `json:"adults"`
	Children       int      `json:"children"`
	CompanionNames []string `json:"companionNames"`
	CheckedInAt    string   `json:"checkedInAt,omitempty"`
}

// IGuestService manages the guest directory.
type IGuestService interface {
	CreateGuest(ctx context.Context, input GuestInput) (*models.Guest, error)
	UpdateGuest(ctx context.Context, id uint, input GuestInput) error
	DeleteGuest(ctx context.Context, id uint) error
	GetGuestByID(ctx context.Context, id uint) (*models.Guest, error)
	GetGuestByTicketCode(ctx context.Context, code string) (*models.Guest, error)
	Search(ctx context.Context, term string) ([]models.Guest, error)
	ListPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ListAll(ctx context.Context) ([]models.Guest, error)
	ImportGuests(ctx context.Context, r io.Reader) (*ImportResult, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportJSON(ctx context.Context) ([]byte, error)
	GetEventStats(ctx context.Context) (*models.EventStats, error)
}

type GuestService struct {
	repo          repositories.IGuestRepository
	rsvpRepo      repositories.IRSVPRepository
	venueCapacity int
}

func NewGuestService() IGuestService {
	return &GuestService{
		repo:          repositories.NewGuestRepository(),
		rsvpRepo:      repositories.NewRSVPRepository(),
		venueCapacity: configs.Get().VenueCapacity,
	}
}

func (s *GuestService) CreateGuest(ctx context.Context, input GuestInput) (*models.Guest, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return nil, ErrGuestInvalidInput
	}

	guest := &models.Guest{
		Name:        input.Name,
		Category:    input.Category,
		FamilySide:  input.FamilySide,
		MaxAdults:   input.MaxAdults,
		MaxChildren: input.MaxChildren,
		TicketCode:  uuid.NewString(),
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		configslog.Log.Error("CreateGuest failed", zap.String("name", input.Name), zap.Error(err))
		return nil, ErrGuestSaveFailed
	}
	return guest, nil
}

func (s *GuestService) UpdateGuest(ctx context.Context, id uint, input GuestInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return ErrGuestInvalidInput
	}

	guest := &models.Guest{
		BaseModel:   models.BaseModel{ID: id},
		Name:        input.Name,
		Category:    input.Category,
		FamilySide:  input.FamilySide,
		MaxAdults:   input.MaxAdults,
		MaxChildren: input.MaxChildren,
	}
	if err := s.repo.Update(ctx, guest); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		configslog.Log.Error("UpdateGuest failed", zap.Uint("id", id), zap.Error(err))
		return ErrGuestSaveFailed
	}
	return nil
}

func (s *GuestService) DeleteGuest(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		configslog.Log.Error("DeleteGuest failed", zap.Uint("id", id), zap.Error(err))
		return ErrGuestDeleteFailed
	}
	return nil
}

func (s *GuestService) GetGuestByID(ctx context.Context, id uint) (*models.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) GetGuestByTicketCode(ctx context.Context, code string) (*models.Guest, error) {
	guest, err := s.repo.FindByTicketCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

// Search serves the public search screen. Terms shorter than three
// characters return an empty result instead of an error.
func (s *GuestService) Search(ctx context.Context, term string) ([]models.Guest, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < searchMinLength {
		return []models.Guest{}, nil
	}
	return s.repo.Search(ctx, term, 20)
}

func (s *GuestService) ListPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	return s.repo.ListPaginated(ctx, params)
}

// ListAll returns the whole directory with RSVPs preloaded, for exports
// and the list analysis.
func (s *GuestService) ListAll(ctx context.Context) ([]models.Guest, error) {
	return s.repo.ListAllWithRSVP(ctx)
}

// ImportGuests reads a delimited file with one guest per line:
//
//	nome,categoria,lado,maxAdultos,maxCrianças
//
// Only the name is required; malformed rows are skipped and counted. A
// header line is detected and ignored.
func (s *GuestService) ImportGuests(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	var guests []*models.Guest

	for lineNo := 0; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}
		if lineNo == 0 && isImportHeader(record) {
			continue
		}

		name := ""
		if len(record) > 0 {
			name = strings.TrimSpace(record[0])
		}
		if name == "" {
			result.Skipped++
			continue
		}

		guest := &models.Guest{
			Name:       name,
			Category:   models.CategoryNameFriend,
			MaxAdults:  1,
			TicketCode: uuid.NewString(),
		}
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			guest.Category = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			guest.FamilySide = strings.ToLower(strings.TrimSpace(record[2]))
		}
		if len(record) > 3 {
			if v, convErr := strconv.Atoi(strings.TrimSpace(record[3])); convErr == nil && v >= 0 {
				guest.MaxAdults = v
			}
		}
		if len(record) > 4 {
			if v, convErr := strconv.Atoi(strings.TrimSpace(record[4])); convErr == nil && v >= 0 {
				guest.MaxChildren = v
			}
		}

		guests = append(guests, guest)
		result.Imported++
	}

	if err := s.repo.CreateBatch(ctx, guests); err != nil {
		configslog.Log.Error("ImportGuests: batch insert failed", zap.Int("rows", len(guests)), zap.Error(err))
		return nil, ErrGuestImportFailed
	}

	configslog.SLog.Infof("importados %d convidados (%d linhas ignoradas)", result.Imported, result.Skipped)
	return result, nil
}

func isImportHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "nome" || first == "name"
}

func (s *GuestService) exportRows(ctx context.Context) ([]ExportRow, error) {
	guests, err := s.repo.ListAllWithRSVP(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]ExportRow, 0, len(guests))
	for _, guest := range guests {
		row := ExportRow{
			Name:           guest.Name,
			Category:       guest.Category,
			FamilySide:     guest.FamilySide,
			MaxAdults:      guest.MaxAdults,
			MaxChildren:    guest.MaxChildren,
			Status:         string(models.RSVPStatusPending),
			CompanionNames: []string{},
		}
		if guest.RSVP != nil {
			row.Status = string(guest.RSVP.Status)
			row.Adults = guest.RSVP.Adults
			row.Children = guest.RSVP.Children
			row.CompanionNames = guest.RSVP.CompanionNames
		}
		if guest.CheckedInAt != nil {
			row.CheckedInAt = guest.CheckedInAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportCSV writes the guest+RSVP join as a download. Read-only.
func (s *GuestService) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.exportRows(ctx)
	if err != nil {
		configslog.Log.Error("ExportCSV failed", zap.Error(err))
		return ErrGuestExportFailed
	}

	writer := csv.NewWriter(w)
	header := []string{"nome", "categoria", "lado", "max_adultos", "max_criancas",
		"status", "adultos", "criancas", "acompanhantes", "check_in"}
	if err := writer.Write(header); err != nil {
		return ErrGuestExportFailed
	}
	for _, row := range rows {
		record := []string{
			row.Name, row.Category, row.FamilySide,
			strconv.Itoa(row.MaxAdults), strconv.Itoa(row.MaxChildren),
			row.Status, strconv.Itoa(row.Adults), strconv.Itoa(row.Children),
			strings.Join(row.CompanionNames, "; "), row.CheckedInAt,
		}
		if err := writer.Write(record); err != nil {
			return ErrGuestExportFailed
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return ErrGuestExportFailed
	}
	return nil
}

// ExportJSON returns the same join as a JSON document.
func (s *GuestService) ExportJSON(ctx context.Context) ([]byte, error) {
	rows, err := s.exportRows(ctx)
	if err != nil {
		configslog.Log.Error("ExportJSON failed", zap.Error(err))
		return nil, ErrGuestExportFailed
	}
	return json.MarshalIndent(rows, "", "  ")
}

// GetEventStats aggregates the dashboard numbers. Total pax counts one
// person per invitation plus the extra companions of confirmed guests.
func (s *GuestService) GetEventStats(ctx context.Context) (*models.EventStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.rsvpRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	confirmedPax, err := s.rsvpRepo.SumConfirmedPax(ctx)
	if err != nil {
		return nil, err
	}
	arrived, err := s.repo.CountArrived(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.EventStats{
		TotalGuests:   total,
		Confirmed:     counts[models.RSVPStatusConfirmed],
		Declined:      counts[models.RSVPStatusDeclined],
		CheckedIn:     arrived,
		VenueCapacity: s.venueCapacity,
	}
	stats.Pending = total - stats.Confirmed - stats.Declined
	if stats.Pending < 0 {
		stats.Pending = 0
	}
	stats.TotalPax = (total - stats.Confirmed) + confirmedPax
	if total > 0 {
		stats.ResponseRate = float64(stats.Confirmed+stats.Declined) / float64(total) * 100
	}
	if s.venueCapacity > 0 {
		stats.CapacityUsage = float64(stats.TotalPax) / float64(s.venueCapacity) * 100
	}
	return stats, nil
}
