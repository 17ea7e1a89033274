package domain

type Language struct {
	Code        string
	DisplayName string
	Color       string
	Active      bool
}
