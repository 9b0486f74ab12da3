package api

import "recipeapp.com/internal/model"

// UserResponse is the self-service view of an account. The password hash is
// never part of any response.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// AdminUserResponse is the staff view of an account.
type AdminUserResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func newAdminUserResponse(u *model.User) AdminUserResponse {
	return AdminUserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

type TokenResponse struct {
	Token string `json:"token"`
}

// RecipeSummary is the shape used by list responses.
type RecipeSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	TimeInMinutes int    `json:"time_in_minutes"`
	Price         string `json:"price"`
	Link          string `json:"link"`
}

// RecipeDetail is the shape of every single-recipe response.
type RecipeDetail struct {
	RecipeSummary
	Description string `json:"description"`
}

func newRecipeSummary(r *model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:            r.ID,
		Title:         r.Title,
		TimeInMinutes: r.TimeInMinutes,
		Price:         r.Price.StringFixed(model.PriceDecimalPlaces),
		Link:          r.Link,
	}
}

func newRecipeDetail(r *model.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeSummary: newRecipeSummary(r),
		Description:   r.Description,
	}
}

func newRecipeSummaries(recipes []model.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, newRecipeSummary(&recipes[i]))
	}
	return out
}
