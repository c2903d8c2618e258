package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

// Error codes reported by ValidateRecipeSubmission, keyed by field.
const (
	CodeInvalidCookingTime  = "invalid_cooking_time"
	CodeEmptyIngredientList = "empty_ingredient_list"
	CodeDuplicateIngredient = "duplicate_ingredient"
	CodeUnknownIngredient   = "unknown_ingredient"
	CodeNonPositiveAmount   = "non_positive_amount"
	CodeEmptyTagList        = "empty_tag_list"
	CodeDuplicateTag        = "duplicate_tag"
	CodeUnknownTag          = "unknown_tag"
)

// Field names used as keys in a ValidationError.
const (
	FieldCookingTime = "cooking_time"
	FieldIngredients = "ingredients"
	FieldTags        = "tags"
)

// IngredientAmount is one (ingredient, amount) pair in a submission.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeSubmission is a candidate recipe before validation. Ingredient
// and tag ids are unresolved references into the reference set.
type RecipeSubmission struct {
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	Ingredients []IngredientAmount
	TagIDs      []uuid.UUID
}

// ValidatedRecipe is a submission with every reference resolved and all
// invariants checked. It is safe to persist as-is.
type ValidatedRecipe struct {
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	Ingredients []ResolvedIngredient
	Tags        []models.Tag
}

// ResolvedIngredient pairs a reference ingredient with its amount.
type ResolvedIngredient struct {
	Ingredient models.Ingredient
	Amount     int
}

// FieldError is a single violation on one field.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError accumulates every violation found in a submission,
// keyed by field, so the caller can correct and resubmit in one pass.
type ValidationError struct {
	Fields map[string][]FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range []string{FieldCookingTime, FieldIngredients, FieldTags} {
		for _, fe := range e.Fields[field] {
			parts = append(parts, field+": "+fe.Message)
		}
	}
	return "invalid recipe submission: " + strings.Join(parts, "; ")
}

// Has reports whether the error carries the given code on the given field.
func (e *ValidationError) Has(field, code string) bool {
	for _, fe := range e.Fields[field] {
		if fe.Code == code {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, code, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]FieldError)
	}
	e.Fields[field] = append(e.Fields[field], FieldError{Code: code, Message: message})
}

// ReferenceSet resolves ingredient and tag ids against the reference
// data. It is injected per call; validation itself never touches storage.
type ReferenceSet interface {
	Ingredient(id uuid.UUID) (models.Ingredient, bool)
	Tag(id uuid.UUID) (models.Tag, bool)
}

type mapReferenceSet struct {
	ingredients map[uuid.UUID]models.Ingredient
	tags        map[uuid.UUID]models.Tag
}

// NewReferenceSet builds an in-memory ReferenceSet from reference rows.
func NewReferenceSet(ingredients []models.Ingredient, tags []models.Tag) ReferenceSet {
	rs := &mapReferenceSet{
		ingredients: make(map[uuid.UUID]models.Ingredient, len(ingredients)),
		tags:        make(map[uuid.UUID]models.Tag, len(tags)),
	}
	for _, ing := range ingredients {
		rs.ingredients[ing.ID] = ing
	}
	for _, tag := range tags {
		rs.tags[tag.ID] = tag
	}
	return rs
}

func (rs *mapReferenceSet) Ingredient(id uuid.UUID) (models.Ingredient, bool) {
	ing, ok := rs.ingredients[id]
	return ing, ok
}

func (rs *mapReferenceSet) Tag(id uuid.UUID) (models.Tag, bool) {
	tag, ok := rs.tags[id]
	return tag, ok
}

// ValidateRecipeSubmission checks a candidate recipe against the
// reference set and returns it with all references resolved. All
// violations are accumulated into one *ValidationError rather than
// failing on the first.
func ValidateRecipeSubmission(sub RecipeSubmission, ref ReferenceSet) (*ValidatedRecipe, error) {
	verr := &ValidationError{}

	if sub.CookingTime < 1 {
		verr.add(FieldCookingTime, CodeInvalidCookingTime,
			"cooking time must be at least one minute")
	}

	resolved := make([]ResolvedIngredient, 0, len(sub.Ingredients))
	if len(sub.Ingredients) == 0 {
		verr.add(FieldIngredients, CodeEmptyIngredientList,
			"recipe needs at least one ingredient")
	}
	seenIngredients := make(map[uuid.UUID]bool, len(sub.Ingredients))
	for _, item := range sub.Ingredients {
		if seenIngredients[item.ID] {
			verr.add(FieldIngredients, CodeDuplicateIngredient,
				fmt.Sprintf("ingredient %s listed more than once", item.ID))
			continue
		}
		seenIngredients[item.ID] = true
		ing, ok := ref.Ingredient(item.ID)
		if !ok {
			verr.add(FieldIngredients, CodeUnknownIngredient,
				fmt.Sprintf("ingredient %s does not exist", item.ID))
			continue
		}
		if item.Amount <= 0 {
			verr.add(FieldIngredients, CodeNonPositiveAmount,
				fmt.Sprintf("amount of %s must be greater than zero", ing.Name))
			continue
		}
		resolved = append(resolved, ResolvedIngredient{Ingredient: ing, Amount: item.Amount})
	}

	tags := make([]models.Tag, 0, len(sub.TagIDs))
	if len(sub.TagIDs) == 0 {
		verr.add(FieldTags, CodeEmptyTagList, "recipe needs at least one tag")
	}
	seenTags := make(map[uuid.UUID]bool, len(sub.TagIDs))
	for _, id := range sub.TagIDs {
		if seenTags[id] {
			verr.add(FieldTags, CodeDuplicateTag,
				fmt.Sprintf("tag %s listed more than once", id))
			continue
		}
		seenTags[id] = true
		tag, ok := ref.Tag(id)
		if !ok {
			verr.add(FieldTags, CodeUnknownTag,
				fmt.Sprintf("tag %s does not exist", id))
			continue
		}
		tags = append(tags, tag)
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	return &ValidatedRecipe{
		Name:        sub.Name,
		Text:        sub.Text,
		ImageURL:    sub.ImageURL,
		CookingTime: sub.CookingTime,
		Ingredients: resolved,
		Tags:        tags,
	}, nil
}
