package validation

import "strings"

// RegisterInput - данные регистрации.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=3,maxbytes=72"`
}

// Validate нормализует email и проверяет поля.
func (in *RegisterInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	return check(in)
}

// LoginInput - данные входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate нормализует email и проверяет поля.
func (in *LoginInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	return check(in)
}

// AddBookInput - данные новой книги. Обложка передается отдельно.
type AddBookInput struct {
	Title  string `json:"title" form:"title" validate:"required,max=100"`
	Author string `json:"author" form:"author" validate:"required,max=100"`
}

// Validate обрезает пробелы и проверяет поля.
func (in *AddBookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	return check(in)
}
