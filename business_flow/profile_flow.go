package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	imagedraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/services"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/linkdeck/linkdeck/utils"
)

const avatarMaxDim = 512

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ProfileFlow manages the authenticated user's profile and the public
// visitor-facing profile surface
type ProfileFlow interface {
	GetMyProfile(ctx context.Context, userID uint) (*dto.GetProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	UploadAvatar(ctx context.Context, request *dto.UploadAvatarRequest) (*dto.UploadAvatarResponse, error)
	GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfileResponse, error)
}

// ProfileFlowImpl implements the profile business flow
type ProfileFlowImpl struct {
	userRepo       repository.UserRepository
	linkRepo       repository.SocialLinkRepository
	docRepo        repository.DocumentRepository
	storageService services.StorageService
	db             *gorm.DB
}

// NewProfileFlow creates a new profile flow instance
func NewProfileFlow(
	userRepo repository.UserRepository,
	linkRepo repository.SocialLinkRepository,
	docRepo repository.DocumentRepository,
	storageService services.StorageService,
	db *gorm.DB,
) ProfileFlow {
	return &ProfileFlowImpl{
		userRepo:       userRepo,
		linkRepo:       linkRepo,
		docRepo:        docRepo,
		storageService: storageService,
		db:             db,
	}
}

// GetMyProfile returns the authenticated user's profile and links
func (pf *ProfileFlowImpl) GetMyProfile(ctx context.Context, userID uint) (*dto.GetProfileResponse, error) {
	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}
	if user == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Profile not found", ErrProfileNotFound)
	}

	links, err := pf.linkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch links", err)
	}

	linkDTOs := make([]dto.SocialLinkDTO, 0, len(links))
	for _, link := range links {
		linkDTOs = append(linkDTOs, ToSocialLinkDTO(*link))
	}

	return &dto.GetProfileResponse{
		Message:     "Profile retrieved successfully",
		User:        ToUserDTO(*user, pf.storageService),
		SocialLinks: linkDTOs,
	}, nil
}

// UpdateProfile applies the non-nil fields of the request
func (pf *ProfileFlowImpl) UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	var resp *dto.UpdateProfileResponse

	err := repository.WithTransaction(ctx, pf.db, func(txCtx context.Context) error {
		user, err := pf.userRepo.ByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrProfileNotFound
		}

		if request.Username != nil {
			username := strings.ToLower(strings.TrimSpace(*request.Username))
			if username != user.Username {
				if reservedUsernames[username] {
					return ErrUsernameReserved
				}
				existing, err := pf.userRepo.ByUsername(txCtx, username)
				if err != nil {
					return err
				}
				if existing != nil && existing.ID != user.ID {
					return ErrUsernameTaken
				}
				user.Username = username
			}
		}
		if request.DisplayName != nil {
			user.DisplayName = request.DisplayName
		}
		if request.Bio != nil {
			user.Bio = request.Bio
		}

		if err := pf.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		resp = &dto.UpdateProfileResponse{
			Message: "Profile updated successfully",
			User:    ToUserDTO(*user, pf.storageService),
		}
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("PROFILE_UPDATE_FAILED", "Failed to update profile", err)
	}

	return resp, nil
}

// UploadAvatar decodes the uploaded image, scales it down, and stores it as a JPEG
func (pf *ProfileFlowImpl) UploadAvatar(ctx context.Context, request *dto.UploadAvatarRequest) (*dto.UploadAvatarResponse, error) {
	ext := strings.ToLower(filepath.Ext(request.OriginalFilename))
	if !allowedAvatarExtensions[ext] {
		return nil, NewBusinessError("AVATAR_INVALID_TYPE", "Avatar must be an image", ErrInvalidFileType)
	}

	user, err := pf.userRepo.ByID(ctx, request.UserID)
	if err != nil {
		return nil, NewBusinessError("AVATAR_UPLOAD_FAILED", "Failed to fetch profile", err)
	}
	if user == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Profile not found", ErrProfileNotFound)
	}

	img, _, err := image.Decode(bytes.NewReader(request.Data))
	if err != nil {
		return nil, NewBusinessError("AVATAR_INVALID_TYPE", "Failed to decode avatar image", err)
	}

	scaled := resizeImage(img, avatarMaxDim)
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return nil, NewBusinessError("AVATAR_UPLOAD_FAILED", "Failed to encode avatar image", err)
	}

	fileKey := fmt.Sprintf("avatars/%s.jpg", user.UUID)
	if err := pf.storageService.Save(ctx, fileKey, buf.Bytes(), "image/jpeg"); err != nil {
		return nil, NewBusinessError("AVATAR_UPLOAD_FAILED", "Failed to store avatar", err)
	}

	user.AvatarPath = utils.ToPtr(fileKey)
	if err := pf.userRepo.Update(ctx, user); err != nil {
		return nil, NewBusinessError("AVATAR_UPLOAD_FAILED", "Failed to save avatar path", err)
	}

	return &dto.UploadAvatarResponse{
		Message:   "Avatar uploaded successfully",
		AvatarURL: pf.storageService.PublicFileURL(fileKey),
	}, nil
}

// GetPublicProfile returns the visitor-facing profile with active links and
// public documents
func (pf *ProfileFlowImpl) GetPublicProfile(ctx context.Context, username string) (*dto.PublicProfileResponse, error) {
	user, err := getActiveUserByUsername(ctx, pf.userRepo, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}
	if user == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Profile not found", ErrProfileNotFound)
	}

	links, err := pf.linkRepo.ActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch links", err)
	}

	docs, err := pf.docRepo.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch documents", err)
	}

	linkDTOs := make([]dto.SocialLinkDTO, 0, len(links))
	for _, link := range links {
		linkDTOs = append(linkDTOs, ToSocialLinkDTO(*link))
	}

	docDTOs := make([]dto.DocumentDTO, 0, len(docs))
	for _, doc := range docs {
		if !utils.IsTrue(doc.IsPublic) {
			continue
		}
		docDTOs = append(docDTOs, ToDocumentDTO(*doc, pf.storageService))
	}

	resp := &dto.PublicProfileResponse{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Bio:         user.Bio,
		SocialLinks: linkDTOs,
		Documents:   docDTOs,
	}
	if user.AvatarPath != nil && *user.AvatarPath != "" {
		resp.AvatarURL = utils.ToPtr(pf.storageService.PublicFileURL(*user.AvatarPath))
	}
	return resp, nil
}

func resizeImage(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		nh = maxDim
		nw = int(float64(w) * float64(maxDim) / float64(h))
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	imagedraw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, imagedraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
