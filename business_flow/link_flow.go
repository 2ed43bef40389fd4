package businessflow

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

// LinkFlow manages the authenticated user's social links
type LinkFlow interface {
	ListLinks(ctx context.Context, userID uint) (*dto.ListLinksResponse, error)
	CreateLink(ctx context.Context, userID uint, request *dto.CreateLinkRequest) (*dto.LinkResponse, error)
	UpdateLink(ctx context.Context, userID uint, linkID uuid.UUID, request *dto.UpdateLinkRequest) (*dto.LinkResponse, error)
	DeleteLink(ctx context.Context, userID uint, linkID uuid.UUID) error
	ReorderLinks(ctx context.Context, userID uint, request *dto.ReorderLinksRequest) (*dto.ReorderLinksResponse, error)
}

// LinkFlowImpl implements the link business flow
type LinkFlowImpl struct {
	linkRepo repository.SocialLinkRepository
	db       *gorm.DB
}

// NewLinkFlow creates a new link flow instance
func NewLinkFlow(linkRepo repository.SocialLinkRepository, db *gorm.DB) LinkFlow {
	return &LinkFlowImpl{linkRepo: linkRepo, db: db}
}

// ListLinks returns the user's links ordered by position
func (lf *LinkFlowImpl) ListLinks(ctx context.Context, userID uint) (*dto.ListLinksResponse, error) {
	links, err := lf.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("LINK_LIST_FAILED", "Failed to list links", err)
	}

	linkDTOs := make([]dto.SocialLinkDTO, 0, len(links))
	for _, link := range links {
		linkDTOs = append(linkDTOs, ToSocialLinkDTO(*link))
	}

	return &dto.ListLinksResponse{
		Message: "Links retrieved successfully",
		Links:   linkDTOs,
	}, nil
}

// CreateLink appends a new link at the end of the user's list
func (lf *LinkFlowImpl) CreateLink(ctx context.Context, userID uint, request *dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	var link *models.SocialLink

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		existing, err := lf.linkRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}

		position := 0
		for _, l := range existing {
			if l.Position >= position {
				position = l.Position + 1
			}
		}

		isActive := true
		if request.IsActive != nil {
			isActive = *request.IsActive
		}

		link = &models.SocialLink{
			ID:       uuid.New(),
			UserID:   userID,
			Title:    request.Title,
			URL:      request.URL,
			Icon:     request.Icon,
			Position: position,
			IsActive: utils.ToPtr(isActive),
		}
		return lf.linkRepo.Save(txCtx, link)
	})
	if err != nil {
		return nil, NewBusinessError("LINK_CREATE_FAILED", "Failed to create link", err)
	}

	return &dto.LinkResponse{
		Message: "Link created successfully",
		Link:    ToSocialLinkDTO(*link),
	}, nil
}

// UpdateLink applies the non-nil fields of the request to an owned link
func (lf *LinkFlowImpl) UpdateLink(ctx context.Context, userID uint, linkID uuid.UUID, request *dto.UpdateLinkRequest) (*dto.LinkResponse, error) {
	link, err := lf.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		link.Title = *request.Title
	}
	if request.URL != nil {
		link.URL = *request.URL
	}
	if request.Icon != nil {
		link.Icon = *request.Icon
	}
	if request.IsActive != nil {
		link.IsActive = request.IsActive
	}

	if err := lf.linkRepo.Update(ctx, link); err != nil {
		return nil, NewBusinessError("LINK_UPDATE_FAILED", "Failed to update link", err)
	}

	return &dto.LinkResponse{
		Message: "Link updated successfully",
		Link:    ToSocialLinkDTO(*link),
	}, nil
}

// DeleteLink removes an owned link
func (lf *LinkFlowImpl) DeleteLink(ctx context.Context, userID uint, linkID uuid.UUID) error {
	if _, err := lf.ownedLink(ctx, userID, linkID); err != nil {
		return err
	}
	if err := lf.linkRepo.Delete(ctx, linkID); err != nil {
		return NewBusinessError("LINK_DELETE_FAILED", "Failed to delete link", err)
	}
	return nil
}

// ReorderLinks applies a full new ordering. The request must list every link
// of the user exactly once.
func (lf *LinkFlowImpl) ReorderLinks(ctx context.Context, userID uint, request *dto.ReorderLinksRequest) (*dto.ReorderLinksResponse, error) {
	var linkDTOs []dto.SocialLinkDTO

	err := repository.WithTransaction(ctx, lf.db, func(txCtx context.Context) error {
		links, err := lf.linkRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}

		owned := make(map[uuid.UUID]*models.SocialLink, len(links))
		for _, link := range links {
			owned[link.ID] = link
		}

		if len(request.LinkIDs) != len(links) {
			return ErrReorderIncomplete
		}

		positions := make(map[uuid.UUID]int, len(request.LinkIDs))
		seen := make(map[uuid.UUID]bool, len(request.LinkIDs))
		for i, raw := range request.LinkIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return ErrLinkNotFound
			}
			if _, ok := owned[id]; !ok {
				return ErrLinkNotFound
			}
			if seen[id] {
				return ErrReorderIncomplete
			}
			seen[id] = true
			positions[id] = i
		}

		if err := lf.linkRepo.UpdatePositions(txCtx, userID, positions); err != nil {
			return err
		}

		ordered, err := lf.linkRepo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}
		linkDTOs = make([]dto.SocialLinkDTO, 0, len(ordered))
		for _, link := range ordered {
			linkDTOs = append(linkDTOs, ToSocialLinkDTO(*link))
		}
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("LINK_REORDER_FAILED", "Failed to reorder links", err)
	}

	return &dto.ReorderLinksResponse{
		Message: "Links reordered successfully",
		Links:   linkDTOs,
	}, nil
}

func (lf *LinkFlowImpl) ownedLink(ctx context.Context, userID uint, linkID uuid.UUID) (*models.SocialLink, error) {
	link, err := lf.linkRepo.ByUUID(ctx, linkID)
	if err != nil {
		return nil, NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup link", err)
	}
	if link == nil {
		return nil, NewBusinessError("LINK_NOT_FOUND", "Link not found", ErrLinkNotFound)
	}
	if link.UserID != userID {
		return nil, NewBusinessError("LINK_ACCESS_DENIED", "Link access denied", ErrLinkAccessDenied)
	}
	return link, nil
}
