package donation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/domain/shared"
)

// ProgramService manages fundraising programs
type ProgramService struct {
	programRepo  donation.ProgramRepository
	donationRepo donation.DonationRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewProgramService creates a new program service
func NewProgramService(
	programRepo donation.ProgramRepository,
	donationRepo donation.DonationRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ProgramService {
	return &ProgramService{
		programRepo:  programRepo,
		donationRepo: donationRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a new active donation program
func (s *ProgramService) Create(ctx context.Context, req ProgramRequest) (*ProgramResponse, error) {
	program, err := donation.NewProgram(req.Title, req.Description, req.TargetAmount)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, program.Slug, uuid.Nil); err != nil {
		return nil, err
	}
	if err := program.SetPeriod(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}
	program.BannerURL = req.BannerURL

	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, program)

	s.logger.Info("Donation program created",
		zap.String("program_id", program.ID.String()),
		zap.String("slug", program.Slug))

	resp := ToProgramResponse(program)
	return &resp, nil
}

// GetByID retrieves a program with its collection summary
func (s *ProgramService) GetByID(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, program), nil
}

// GetBySlug retrieves a program for the public site
func (s *ProgramService) GetBySlug(ctx context.Context, slug string) (*ProgramResponse, error) {
	program, err := s.programRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withSummary(ctx, program), nil
}

// List retrieves programs matching the filter
func (s *ProgramService) List(ctx context.Context, req ProgramListFilter, filter shared.Filter) (*shared.Paginated[ProgramResponse], error) {
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	page, err := s.programRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProgramResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToProgramResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, filter.Page, filter.PageSize), nil
}

// Update updates a program's descriptive fields and period
func (s *ProgramService) Update(ctx context.Context, id uuid.UUID, req ProgramRequest) (*ProgramResponse, error) {
	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := program.Update(req.Title, req.Description, req.TargetAmount); err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, program.Slug, program.ID); err != nil {
		return nil, err
	}
	if err := program.SetPeriod(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}
	program.BannerURL = req.BannerURL

	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, err
	}

	resp := ToProgramResponse(program)
	return &resp, nil
}

// Close stops the program from accepting donations
func (s *ProgramService) Close(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, (*donation.Program).Close)
}

// Reopen makes the program accept donations again
func (s *ProgramService) Reopen(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, func(p *donation.Program) error {
		p.Reopen()
		return nil
	})
}

// Delete removes a program unless donations were recorded against it
func (s *ProgramService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.programRepo.FindByID(ctx, id); err != nil {
		return err
	}

	has, err := s.programRepo.HasDonations(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return shared.NewDomainError("HAS_DONATIONS", "Program has donations and cannot be deleted")
	}

	if err := s.programRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Donation program deleted", zap.String("program_id", id.String()))
	return nil
}

func (s *ProgramService) transition(ctx context.Context, id uuid.UUID, change func(*donation.Program) error) error {
	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(program); err != nil {
		return err
	}
	return s.programRepo.Save(ctx, program)
}

func (s *ProgramService) withSummary(ctx context.Context, program *donation.Program) *ProgramResponse {
	resp := ToProgramResponse(program)
	if summary, err := s.donationRepo.SummarizeProgram(ctx, program.ID); err == nil {
		resp.TotalCollected = &summary.TotalCollected
		resp.DonorCount = &summary.DonorCount
	}
	return &resp
}

func (s *ProgramService) checkSlug(ctx context.Context, slug string, excludeID uuid.UUID) error {
	existing, err := s.programRepo.FindBySlug(ctx, slug)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil
		}
		return err
	}
	if existing.ID != excludeID {
		return shared.NewDomainError("DUPLICATE_TITLE", "A program with this title already exists")
	}
	return nil
}

func (s *ProgramService) publishEvents(ctx context.Context, program *donation.Program) {
	if s.eventBus == nil {
		return
	}
	// Event delivery is best effort, failures do not roll back the write.
	_ = s.eventBus.Publish(ctx, program.GetDomainEvents()...)
	program.ClearDomainEvents()
}
