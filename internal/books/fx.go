package books

import (
	"github.com/smallbiznis/booksync/internal/books/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("books",
	fx.Provide(repository.Provide),
	fx.Invoke(Migrate),
)
