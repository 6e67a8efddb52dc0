package model

// Book is a catalog entry used to turn suggested titles into display entries.
type Book struct {
	Title       string
	Category    Category
	ImageURL    string
	URL         string
	Price       string
	Description string
}
