package presenter

import "github.com/Veraticus/biblio/internal/model"

func book(category model.Category, title, slug string) model.Book {
	return model.Book{
		Title:    title,
		Category: category,
		ImageURL: PlaceholderImage,
		URL:      "https://example.com/" + slug,
	}
}

// DefaultCatalog is the built-in book list, three titles per known category.
// Storage seeds itself from it on first migration.
func DefaultCatalog() []model.Book {
	return []model.Book{
		book(model.CategoryScienceFiction, "Dune", "dune"),
		book(model.CategoryScienceFiction, "Fondation", "fondation"),
		book(model.CategoryScienceFiction, "2001: L'Odyssée de l'espace", "2001"),
		book(model.CategoryRomance, "Orgueil et Préjugés", "orgueil"),
		book(model.CategoryRomance, "Le Journal de Bridget Jones", "bridget"),
		book(model.CategoryRomance, "Nuits Blanches", "nuits"),
		book(model.CategoryThriller, "Le Silence des Agneaux", "silence"),
		book(model.CategoryThriller, "Millénium", "millenium"),
		book(model.CategoryThriller, "Gone Girl", "gone"),
		book(model.CategoryFantasy, "Le Seigneur des Anneaux", "lotr"),
		book(model.CategoryFantasy, "Harry Potter", "harry"),
		book(model.CategoryFantasy, "Le Trône de Fer", "got"),
		book(model.CategoryHistoire, "Sapiens", "sapiens"),
		book(model.CategoryHistoire, "Guerre et Paix", "guerre"),
		book(model.CategoryHistoire, "L'Histoire de France", "histoire"),
		book(model.CategoryLitterature, "Cent Ans de Solitude", "centans"),
		book(model.CategoryLitterature, "Les Misérables", "miserables"),
		book(model.CategoryLitterature, "L'Étranger", "etranger"),
	}
}

// FilterCatalog returns the books of one category, in order.
func FilterCatalog(books []model.Book, category model.Category) []model.Book {
	var out []model.Book
	for _, b := range books {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}
