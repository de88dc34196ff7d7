package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drinksDomain "github.com/t-lanigan/coffee-shop/internal/drinks/domain"
)

func ptr(s string) *string { return &s }

func TestRecipeRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected RecipeRequest
		wantErr  bool
	}{
		{
			name: "array",
			body: `{"recipe":[{"name":"espresso","color":"brown","parts":1},{"name":"milk","color":"white","parts":2}]}`,
			expected: RecipeRequest{
				{Name: "espresso", Color: "brown", Parts: 1},
				{Name: "milk", Color: "white", Parts: 2},
			},
		},
		{
			name:     "single object",
			body:     `{"recipe": {"name":"water","color":"blue","parts":1}}`,
			expected: RecipeRequest{{Name: "water", Color: "blue", Parts: 1}},
		},
		{
			name:     "null",
			body:     `{"recipe":null}`,
			expected: nil,
		},
		{
			name:     "empty array",
			body:     `{"recipe":[]}`,
			expected: RecipeRequest{},
		},
		{
			name:    "string",
			body:    `{"recipe":"espresso"}`,
			wantErr: true,
		},
		{
			name:    "wrong parts type",
			body:    `{"recipe":[{"name":"espresso","color":"brown","parts":"one"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateDrinkRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req.Recipe)
		})
	}
}

func TestCreateDrinkRequest_Validate(t *testing.T) {
	validRecipe := RecipeRequest{{Name: "espresso", Color: "brown", Parts: 1}}

	tests := []struct {
		name    string
		request CreateDrinkRequest
		errMsg  string
	}{
		{
			name:    "valid request",
			request: CreateDrinkRequest{Title: "espresso", Recipe: validRecipe},
		},
		{
			name:    "title at max length",
			request: CreateDrinkRequest{Title: strings.Repeat("é", drinksDomain.TitleMaxLength), Recipe: validRecipe},
		},
		{
			name:    "missing title",
			request: CreateDrinkRequest{Recipe: validRecipe},
			errMsg:  "title: cannot be blank",
		},
		{
			name:    "blank title",
			request: CreateDrinkRequest{Title: "   ", Recipe: validRecipe},
			errMsg:  "title: must not be blank",
		},
		{
			name:    "title too long",
			request: CreateDrinkRequest{Title: strings.Repeat("a", drinksDomain.TitleMaxLength+1), Recipe: validRecipe},
			errMsg:  "title: the length must be between 1 and 80",
		},
		{
			name:    "missing recipe",
			request: CreateDrinkRequest{Title: "espresso"},
			errMsg:  "recipe: cannot be blank",
		},
		{
			name:    "empty recipe",
			request: CreateDrinkRequest{Title: "espresso", Recipe: RecipeRequest{}},
			errMsg:  "recipe: cannot be blank",
		},
		{
			name: "ingredient without name",
			request: CreateDrinkRequest{
				Title:  "espresso",
				Recipe: RecipeRequest{{Color: "brown", Parts: 1}},
			},
			errMsg: "name: cannot be blank",
		},
		{
			name: "ingredient with invalid color",
			request: CreateDrinkRequest{
				Title:  "espresso",
				Recipe: RecipeRequest{{Name: "espresso", Color: "#12", Parts: 1}},
			},
			errMsg: "color: must be a color name or a hex color",
		},
		{
			name: "ingredient with zero parts",
			request: CreateDrinkRequest{
				Title:  "espresso",
				Recipe: RecipeRequest{{Name: "espresso", Color: "brown"}},
			},
			errMsg: "parts: cannot be blank",
		},
		{
			name: "ingredient with negative parts",
			request: CreateDrinkRequest{
				Title:  "espresso",
				Recipe: RecipeRequest{{Name: "espresso", Color: "brown", Parts: -2}},
			},
			errMsg: "parts: must be no less than 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCreateDrinkRequest_ToInput(t *testing.T) {
	req := CreateDrinkRequest{
		Title:  "  flat white ",
		Recipe: RecipeRequest{{Name: " espresso", Color: "#6f4e37", Parts: 1}},
	}

	input := req.ToInput()

	assert.Equal(t, "flat white", input.Title)
	assert.Equal(t, []drinksDomain.Ingredient{{Name: "espresso", Color: "#6f4e37", Parts: 1}}, input.Recipe)
}

func TestUpdateDrinkRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request UpdateDrinkRequest
		errMsg  string
	}{
		{
			name:    "title only",
			request: UpdateDrinkRequest{Title: ptr("cortado")},
		},
		{
			name:    "recipe only",
			request: UpdateDrinkRequest{Recipe: RecipeRequest{{Name: "milk", Color: "white", Parts: 1}}},
		},
		{
			name:    "no fields",
			request: UpdateDrinkRequest{},
			errMsg:  "title or recipe is required",
		},
		{
			name:    "empty title",
			request: UpdateDrinkRequest{Title: ptr("")},
			errMsg:  "title: cannot be blank",
		},
		{
			name:    "blank title",
			request: UpdateDrinkRequest{Title: ptr("  ")},
			errMsg:  "title: must not be blank",
		},
		{
			name:    "empty recipe",
			request: UpdateDrinkRequest{Recipe: RecipeRequest{}},
			errMsg:  "recipe: cannot be blank",
		},
		{
			name:    "invalid ingredient",
			request: UpdateDrinkRequest{Recipe: RecipeRequest{{Name: "milk", Color: "white", Parts: 0}}},
			errMsg:  "parts: cannot be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestUpdateDrinkRequest_ToInput(t *testing.T) {
	t.Run("TitleOnly", func(t *testing.T) {
		input := (&UpdateDrinkRequest{Title: ptr(" cortado ")}).ToInput()

		require.NotNil(t, input.Title)
		assert.Equal(t, "cortado", *input.Title)
		assert.Nil(t, input.Recipe)
	})

	t.Run("RecipeOnly", func(t *testing.T) {
		input := (&UpdateDrinkRequest{Recipe: RecipeRequest{{Name: "milk", Color: "white", Parts: 1}}}).ToInput()

		assert.Nil(t, input.Title)
		assert.Equal(t, []drinksDomain.Ingredient{{Name: "milk", Color: "white", Parts: 1}}, input.Recipe)
	})
}
