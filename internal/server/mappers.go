package server

import (
	"luxe/internal/api"
	"luxe/internal/models"
)

func toProductResponse(product *models.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Category:      product.Category,
		Images:        product.Images,
		Videos:        product.Videos,
		Colors:        product.Colors,
		Brand:         product.Brand,
		Featured:      product.Featured,
		InStock:       product.InStock,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toProductResponses(products []models.Product) []api.ProductResponse {
	out := make([]api.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toProductSummaryResponses(summaries []models.ProductSummary) []api.ProductSummaryResponse {
	out := make([]api.ProductSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, api.ProductSummaryResponse{
			ID:       summary.ID,
			Name:     summary.Name,
			Category: summary.Category,
			Price:    summary.Price,
			InStock:  summary.InStock,
		})
	}
	return out
}

func toCartItemResponses(items []models.CartItemWithProduct) []api.CartItemResponse {
	out := make([]api.CartItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, api.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Packaging: item.Packaging,
			Product:   toProductResponse(&item.Product),
		})
	}
	return out
}

func toUserResponse(user *models.User) *api.UserResponse {
	if user == nil {
		return nil
	}
	return &api.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Verified: user.EmailVerifiedAt != nil,
	}
}

func toProfileResponse(profile *models.CustomerProfile) api.ProfileResponse {
	return api.ProfileResponse{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Phone:     profile.Phone,
		Address1:  profile.Address1,
		Address2:  profile.Address2,
		City:      profile.City,
		State:     profile.State,
		Pin:       profile.Pin,
		UpdatedAt: profile.UpdatedAt,
	}
}

func toStorageFileResponses(files []models.ClassifiedFile) []api.StorageFileResponse {
	out := make([]api.StorageFileResponse, 0, len(files))
	for _, file := range files {
		out = append(out, api.StorageFileResponse{
			ID:          file.ID,
			ContentType: file.ContentType,
			SizeBytes:   file.SizeBytes,
			UploadedAt:  file.UploadedAt,
			URL:         file.URL,
			Status:      string(file.Status),
		})
	}
	return out
}

func toStorageFileGroups(groups [][]models.ClassifiedFile) [][]api.StorageFileResponse {
	out := make([][]api.StorageFileResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, toStorageFileResponses(group))
	}
	return out
}
