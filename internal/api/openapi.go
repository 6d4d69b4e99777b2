package api

import (
	"github.com/RockeTall/CheckMate-demo/internal/config"
	"github.com/RockeTall/CheckMate-demo/pkg/openapi"
)

// BuildSpec generates the OpenAPI document for the service's HTTP
// surface. Schemas stay coarse; the document exists to make the API
// explorable from the reference UI, not to drive code generation.
func BuildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	errorRef := func(name string) *openapi.Response {
		return &openapi.Response{Ref: "#/components/responses/" + name}
	}

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Question": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"number": {Type: "string", Description: "Normalized question number", Example: "3"},
				"text":   {Type: "string", Description: "Question text (Hebrew)"},
				"points": {Type: "number", Description: "Point value; 0 when undeclared"},
				"answer": {Type: "string", Description: "Expected answer or per-question rubric"},
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total_score":  {Type: "number", Description: "Aggregated total"},
				"scoring_mode": {Type: "string", Enum: []any{"relative", "fallback_average", "training"}},
				"questions":    {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"file_errors":  {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
		},
	})

	spec.Paths["/exams"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List exams",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated exam list"},
			},
		},
		Post: &openapi.Operation{
			Summary: "Create exam",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				201: {Description: "Created exam"},
				400: errorRef("BadRequest"),
				409: errorRef("Conflict"),
			},
		},
	}

	spec.Paths["/exams/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Find exam",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Exam"},
				404: errorRef("NotFound"),
			},
		},
		Put: &openapi.Operation{
			Summary: "Update exam",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Updated exam"},
				400: errorRef("BadRequest"),
				404: errorRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary: "Delete exam",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: errorRef("NotFound"),
			},
		},
	}

	spec.Paths["/exams/extract-sheet"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Extract questions from a question sheet",
			Description: "Runs vision extraction over uploaded question-sheet images and returns numbered questions with point values.",
			Tags:        []string{"exams"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Extracted question list"},
				400: errorRef("BadRequest"),
			},
		},
	}

	spec.Paths["/exams/{id}/practice"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary: "Generate practice questions",
			Tags:    []string{"exams"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Generated practice questions"},
				404: errorRef("NotFound"),
			},
		},
	}

	spec.Paths["/submissions"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List submissions",
			Tags:    []string{"submissions"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated submission list"},
			},
		},
		Post: &openapi.Operation{
			Summary:     "Upload submission pages",
			Description: "Multipart form of scanned exam pages; per-page results report pages that failed to store.",
			Tags:        []string{"submissions"},
			Responses: map[int]*openapi.Response{
				201: {Description: "Created submission with per-page results"},
				400: errorRef("BadRequest"),
			},
		},
	}

	spec.Paths["/submissions/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Find submission",
			Tags:    []string{"submissions"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Submission"},
				404: errorRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary: "Delete submission",
			Tags:    []string{"submissions"},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: errorRef("NotFound"),
			},
		},
	}

	spec.Paths["/submissions/{id}/grade"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Grade a submission",
			Description: "Runs the grading pipeline over the submission's stored pages and persists the report.",
			Tags:        []string{"submissions"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Grading report"},
				400: errorRef("BadRequest"),
				404: errorRef("NotFound"),
			},
		},
	}

	spec.Paths["/memory"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List correction records",
			Tags:    []string{"memory"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Paginated correction records"},
			},
		},
		Post: &openapi.Operation{
			Summary: "Save a correction record",
			Tags:    []string{"memory"},
			Responses: map[int]*openapi.Response{
				201: {Description: "Saved record"},
				400: errorRef("BadRequest"),
			},
		},
	}

	spec.Paths["/memory/{hash}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Find similar corrections",
			Tags:    []string{"memory"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Up to five newest matching records"},
			},
		},
	}

	spec.Paths["/storage"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List stored blobs",
			Tags:    []string{"storage"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Blob listing"},
			},
		},
	}

	return spec
}
