package echoapi

import (
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/starville/academy/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// formUpload extracts the named file from a multipart form.
// A nil Upload is returned when no file was attached.
// The caller must close the returned io.Closer when it is not nil.
func formUpload(ctx echo.Context, field string) (*core.Upload, io.Closer, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, nil // no file attached
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening uploaded %s", field)
	}
	up := &core.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	return up, f, nil
}
