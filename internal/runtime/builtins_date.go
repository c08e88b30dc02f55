package runtime

import (
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/lambda-lang/lambda/internal/item"
)

// FnDatetime implements fn_datetime (config.DatetimeName): formats the
// unix-nanosecond value boxed behind a DATETIME Item using a strftime
// layout string, grounded on the teacher's use of ncruces/go-strftime
// for calendar formatting in builtins_date.go.
func (c *Context) FnDatetime(it item.Item, layout string) (string, error) {
	if it.Tag() != item.Datetime {
		return "", &DecimalParseError{Value: "not a DATETIME item"}
	}
	nanos := c.Numbers.UnboxDatetime(it)
	t := time.Unix(0, nanos).UTC()
	return strftime.Format(layout, t)
}

// BoxNow boxes the current instant as a DATETIME Item.
func (c *Context) BoxNow() item.Item {
	return c.Numbers.BoxDatetime(time.Now().UnixNano())
}
