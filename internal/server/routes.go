package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thywilljoshua/storyviz/internal/storybook"
)

const defaultScenes = 3

type API struct {
	deps Deps
	log  zerolog.Logger
}

func NewAPI(deps Deps, log zerolog.Logger) *API {
	return &API{deps: deps, log: log}
}

func registerRoutes(r *gin.Engine, api *API) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)
		apiGroup.GET("/styles", api.handleStyles)
		apiGroup.POST("/storybooks", api.handleVisualize)
	}
}

type promptView struct {
	Scene  int    `json:"scene"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

type imageView struct {
	Scene   int    `json:"scene"`
	Label   string `json:"label"`
	Prompt  string `json:"prompt"`
	DataURL string `json:"data_url"`
}

type sceneErrorView struct {
	Scene  int    `json:"scene"`
	Prompt string `json:"prompt"`
	Error  string `json:"error"`
}

type visualizeResponse struct {
	Characters   int              `json:"characters"`
	Summary      string           `json:"summary"`
	PromptSource string           `json:"prompt_source"`
	Prompts      []promptView     `json:"prompts"`
	Images       []imageView      `json:"images"`
	Errors       []sceneErrorView `json:"errors"`
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":         storybook.Styles(),
		"default":        storybook.DefaultStyle,
		"min_scenes":     storybook.MinScenes,
		"max_scenes":     storybook.MaxScenes,
		"default_scenes": defaultScenes,
	})
}

func (a *API) handleVisualize(c *gin.Context) {
	style := storybook.DefaultStyle
	if v := strings.TrimSpace(c.PostForm("style")); v != "" {
		st, err := storybook.ParseStyle(v)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		style = st
	}

	scenes := defaultScenes
	if v := strings.TrimSpace(c.PostForm("scenes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "scenes must be an integer")
			return
		}
		scenes = n
	}
	if err := storybook.ValidateSceneCount(scenes); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "missing pdf file in field 'file'")
		return
	}

	tmp, err := os.CreateTemp("", "storyviz-*.pdf")
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	log := a.log.With().Str("request_id", c.GetString("request_id")).Str("upload", file.Filename).Logger()
	res, err := storybook.Run(c.Request.Context(), tmpPath, storybook.Config{
		Loader:  a.deps.Loader,
		Text:    a.deps.Text,
		Images:  a.deps.Images,
		Limiter: a.deps.Limiter,
		Logger:  &log,
		Style:   style,
		Scenes:  scenes,
	})
	if err != nil {
		log.Error().Err(err).Msg("storybook run failed")
		status := http.StatusInternalServerError
		if errors.Is(err, storybook.ErrInvalidSceneCount) || errors.Is(err, storybook.ErrUnknownStyle) {
			status = http.StatusBadRequest
		}
		respondMessage(c, status, "processing failed: "+err.Error())
		return
	}

	resp, err := buildResponse(res)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func buildResponse(res storybook.Result) (visualizeResponse, error) {
	out := visualizeResponse{
		Characters:   res.CharCount,
		Summary:      res.Summary,
		PromptSource: res.PromptSource.String(),
		Prompts:      make([]promptView, 0, len(res.Prompts)),
		Images:       make([]imageView, 0, len(res.Images)),
		Errors:       make([]sceneErrorView, 0, len(res.Failures)),
	}
	for i, p := range res.Prompts {
		out.Prompts = append(out.Prompts, promptView{Scene: i + 1, Label: storybook.SceneLabel(i + 1), Prompt: p})
	}
	labels := storybook.ImageLabels(res.Images)
	for i, img := range res.Images {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img.Image); err != nil {
			return visualizeResponse{}, err
		}
		out.Images = append(out.Images, imageView{
			Scene:   img.Index,
			Label:   labels[i],
			Prompt:  img.Prompt,
			DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		})
	}
	for _, f := range res.Failures {
		out.Errors = append(out.Errors, sceneErrorView{Scene: f.Index, Prompt: f.Prompt, Error: f.Err.Error()})
	}
	return out, nil
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
