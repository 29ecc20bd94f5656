package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"foodapp/internal/apperr"
	"foodapp/internal/models"
)

const (
	maxFormMemory  = 32 << 20
	maxMenuNameLen = 100
)

var errInvalidForm = apperr.New(apperr.Validation, "invalid_form", "invalid form")

type restaurantInput struct {
	RestaurantName string
	City           string
	Country        string
	DeliveryTime   int
	Cuisines       models.StringList
	Image          *multipart.FileHeader
}

type menuInput struct {
	Name           string
	NameSet        bool
	Description    string
	DescriptionSet bool
	Price          int64
	PriceSet       bool
	Image          *multipart.FileHeader
}

// parseRestaurantForm reads the multipart restaurant form. Every text field
// is required; the image is optional here and enforced by the caller.
func parseRestaurantForm(c *gin.Context) (restaurantInput, error) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		return restaurantInput{}, errInvalidForm.WithMessage("expected multipart form data")
	}

	input := restaurantInput{
		RestaurantName: strings.TrimSpace(c.PostForm("restaurantName")),
		City:           strings.TrimSpace(c.PostForm("city")),
		Country:        strings.TrimSpace(c.PostForm("country")),
	}
	if input.RestaurantName == "" || input.City == "" || input.Country == "" {
		return restaurantInput{}, errInvalidForm.WithMessage("restaurantName, city and country are required")
	}

	deliveryTime, err := strconv.Atoi(strings.TrimSpace(c.PostForm("deliveryTime")))
	if err != nil || deliveryTime <= 0 {
		return restaurantInput{}, errInvalidForm.WithMessage("deliveryTime must be a positive number of minutes")
	}
	input.DeliveryTime = deliveryTime

	// A single value may be a JSON array; repeated fields are joined.
	raw := c.PostFormArray("cuisines")
	joined := strings.Join(raw, ",")
	if len(raw) == 1 {
		joined = raw[0]
	}
	cuisines, err := models.ParseStringList(joined)
	if err != nil {
		return restaurantInput{}, errInvalidForm.WithMessage("cuisines must be a JSON array or a comma separated list")
	}
	if len(cuisines) == 0 {
		return restaurantInput{}, errInvalidForm.WithMessage("at least one cuisine is required")
	}
	input.Cuisines = cuisines

	if input.Image, err = optionalFormFile(c, "imageFile"); err != nil {
		return restaurantInput{}, err
	}
	return input, nil
}

// parseMenuForm reads the multipart menu form. Fields absent from the form
// are reported through the *Set flags so updates can leave them untouched.
func parseMenuForm(c *gin.Context) (menuInput, error) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		return menuInput{}, errInvalidForm.WithMessage("expected multipart form data")
	}

	input := menuInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
		if input.Name == "" {
			return menuInput{}, errInvalidForm.WithMessage("name must not be empty")
		}
		if utf8.RuneCountInString(input.Name) > maxMenuNameLen {
			return menuInput{}, errInvalidForm.WithMessage("name must be at most 100 characters")
		}
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || parsed < 0 {
			return menuInput{}, errInvalidForm.WithMessage("price must be a non-negative integer amount in the smallest currency unit")
		}
		input.Price = parsed
		input.PriceSet = true
	}

	var err error
	if input.Image, err = optionalFormFile(c, "image"); err != nil {
		return menuInput{}, err
	}
	return input, nil
}

func optionalFormFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err == nil {
		return file, nil
	}
	if errors.Is(err, http.ErrMissingFile) || strings.Contains(err.Error(), "no such file") {
		return nil, nil
	}
	return nil, errInvalidForm.WithMessage("could not read " + field)
}
