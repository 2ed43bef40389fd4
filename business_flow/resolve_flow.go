package businessflow

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

// Resolution outcomes recorded in metrics
const (
	outcomeDocumentSlug = "document_slug"
	outcomeDocumentID   = "document_id"
	outcomeLink         = "link"
	outcomeNotFound     = "not_found"
)

var resolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "linkdeck_resolutions_total",
		Help: "Total identifier resolutions partitioned by outcome",
	},
	[]string{"outcome"},
)

// ResolveFlow maps a (username, identifier) pair from a public URL to a
// redirect target. Strategies run in a fixed precedence order: document by
// slug, document by id for UUID-shaped identifiers, then social links matched
// by icon name or slugified title.
// Public flow, no authentication required
type ResolveFlow interface {
	Resolve(ctx context.Context, username, identifier string) (*dto.ResolutionTarget, error)
}

type ResolveFlowImpl struct {
	userRepo repository.UserRepository
	docRepo  repository.DocumentRepository
	linkRepo repository.SocialLinkRepository
	storage  services.StorageService
	cache    *redis.Client
}

func NewResolveFlow(
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	linkRepo repository.SocialLinkRepository,
	storage services.StorageService,
	cache *redis.Client,
) ResolveFlow {
	return &ResolveFlowImpl{
		userRepo: userRepo,
		docRepo:  docRepo,
		linkRepo: linkRepo,
		storage:  storage,
		cache:    cache,
	}
}

func notFoundTarget() *dto.ResolutionTarget {
	resolutionsTotal.WithLabelValues(outcomeNotFound).Inc()
	return &dto.ResolutionTarget{Kind: dto.TargetKindNotFound}
}

// Resolve walks the strategies in order and returns the first hit. A missing
// or inactive profile ends the resolution immediately; a failing document
// lookup falls through to the next strategy.
func (f *ResolveFlowImpl) Resolve(ctx context.Context, username, identifier string) (*dto.ResolutionTarget, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	identifier = strings.TrimSpace(identifier)
	if username == "" || identifier == "" {
		return notFoundTarget(), nil
	}

	user, err := f.lookupUser(ctx, username)
	if err != nil || user == nil {
		if err != nil {
			log.Printf("resolve: profile lookup failed for %q: %v", username, err)
		}
		return notFoundTarget(), nil
	}

	identifierLower := strings.ToLower(identifier)

	if target := f.resolveDocumentBySlug(ctx, user.ID, identifierLower); target != nil {
		resolutionsTotal.WithLabelValues(outcomeDocumentSlug).Inc()
		return target, nil
	}

	if utils.IsUUIDShaped(identifier) {
		if target := f.resolveDocumentByID(ctx, user.ID, identifierLower); target != nil {
			resolutionsTotal.WithLabelValues(outcomeDocumentID).Inc()
			return target, nil
		}
	}

	if target := f.resolveSocialLink(ctx, user.ID, identifierLower); target != nil {
		resolutionsTotal.WithLabelValues(outcomeLink).Inc()
		return target, nil
	}

	return notFoundTarget(), nil
}

// lookupUser fetches the profile owner, consulting the short-lived username
// cache first. Cache errors count as misses.
func (f *ResolveFlowImpl) lookupUser(ctx context.Context, username string) (*models.User, error) {
	storeCtx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	if f.cache != nil {
		if cached, err := f.cache.Get(storeCtx, usernameCacheKey(username)).Result(); err == nil {
			if id, perr := strconv.ParseUint(cached, 10, 64); perr == nil {
				user, uerr := f.userRepo.ByID(storeCtx, uint(id))
				if uerr == nil && user != nil && utils.IsTrue(user.IsActive) {
					return user, nil
				}
			}
		}
	}

	user, err := getActiveUserByUsername(storeCtx, f.userRepo, username)
	if err != nil || user == nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, usernameCacheKey(username), strconv.FormatUint(uint64(user.ID), 10), utils.UsernameCacheTTL).Err(); err != nil {
			log.Printf("resolve: username cache set failed for %q: %v", username, err)
		}
	}

	return user, nil
}

func usernameCacheKey(username string) string {
	return "resolve:username:" + username
}

func (f *ResolveFlowImpl) resolveDocumentBySlug(ctx context.Context, userID uint, slug string) *dto.ResolutionTarget {
	storeCtx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	doc, err := f.docRepo.PublicBySlug(storeCtx, userID, slug)
	if err != nil {
		log.Printf("resolve: document slug lookup failed for %q: %v", slug, err)
		return nil
	}
	if doc == nil {
		return nil
	}
	return &dto.ResolutionTarget{
		Kind: dto.TargetKindDocument,
		URL:  f.storage.PublicFileURL(doc.FilePath),
	}
}

func (f *ResolveFlowImpl) resolveDocumentByID(ctx context.Context, userID uint, identifier string) *dto.ResolutionTarget {
	id, err := uuid.Parse(identifier)
	if err != nil {
		return nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	doc, err := f.docRepo.PublicByUUID(storeCtx, userID, id)
	if err != nil {
		log.Printf("resolve: document id lookup failed for %q: %v", identifier, err)
		return nil
	}
	if doc == nil {
		return nil
	}
	return &dto.ResolutionTarget{
		Kind: dto.TargetKindDocument,
		URL:  f.storage.PublicFileURL(doc.FilePath),
	}
}

// resolveSocialLink scans the user's active links in position order and picks
// the first whose icon name or slugified title equals the identifier.
func (f *ResolveFlowImpl) resolveSocialLink(ctx context.Context, userID uint, identifier string) *dto.ResolutionTarget {
	storeCtx, cancel := context.WithTimeout(ctx, utils.StoreCallTimeout)
	defer cancel()

	links, err := f.linkRepo.ActiveByUser(storeCtx, userID)
	if err != nil {
		log.Printf("resolve: social link scan failed: %v", err)
		return nil
	}

	var matched *models.SocialLink
	matches := 0
	for _, link := range links {
		if strings.ToLower(link.Icon) == identifier || utils.Slugify(link.Title) == identifier {
			matches++
			if matched == nil {
				matched = link
			}
		}
	}
	if matched == nil {
		return nil
	}
	if matches > 1 {
		log.Printf("resolve: identifier %q matched %d links for user %d, using link %s", identifier, matches, userID, matched.ID)
	}

	return &dto.ResolutionTarget{
		Kind:   dto.TargetKindLink,
		URL:    matched.URL,
		LinkID: matched.ID.String(),
	}
}
