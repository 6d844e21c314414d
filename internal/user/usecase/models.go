package usecase

type CreateInput struct {
	Name  string
	Email string
}
