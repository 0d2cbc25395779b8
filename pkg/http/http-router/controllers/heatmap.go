package controllers

import (
	"fmt"
	"net/http"

	"github.com/lintang-b-s/places-heatmap/pkg/geo"
	helper "github.com/lintang-b-s/places-heatmap/pkg/http/http-router/router-helper"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/paulmach/orb/geojson"

	"go.uber.org/zap"
)

type heatmapAPI struct {
	heatmapService HeatmapService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(heatmapService HeatmapService, log *zap.Logger) *heatmapAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &heatmapAPI{
		heatmapService: heatmapService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}

}

func (api *heatmapAPI) Routes(group *helper.RouteGroup) {
	group.GET("/search-area", api.searchArea)
	group.POST("/sessions", api.createSession)

	// keywords are free text and may contain '/', so overlays are addressed by overlay_id.
	sessions := group.Group("/sessions/:session")
	sessions.DELETE("", api.deleteSession)
	sessions.POST("/keywords", api.submitKeyword)
	sessions.GET("/overlays", api.overlays)
	sessions.GET("/overlays/:overlay", api.overlay)
	sessions.PUT("/overlays/:overlay/visibility", api.setVisibility)
	sessions.GET("/export", api.export)
	sessions.GET("/notices", api.notices)
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// searchAreaResponse model info
//
//	@Description	map center, sub-query centers and the radius of the circle drawn around the center.
type searchAreaResponse struct {
	Data geo.SearchArea `json:"data"`
}

// searchArea godoc
// @Summary		returns the map center, the four sub-query centers and the search area circle.
// @Tags			heatmap
// @ID search-area
// @Produce		application/json
// @Router			/api/search-area [get]
// @Success		200	{object}	searchAreaResponse
func (api *heatmapAPI) searchArea(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, searchAreaResponse{Data: api.heatmapService.SearchArea()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type createSessionResponse struct {
	Data struct {
		SessionID string `json:"session_id"`
	} `json:"data"`
}

// createSession godoc
// @Summary		creates a new session with an empty keyword registry and no overlays.
// @Tags			session
// @ID create-session
// @Produce		application/json
// @Router			/api/sessions [post]
// @Success		201	{object}	createSessionResponse
// @Failure		500	{object}	errorResponse
func (api *heatmapAPI) createSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := api.heatmapService.CreateSession()
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}

	var resp createSessionResponse
	resp.Data.SessionID = id
	if err := api.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// deleteSession godoc
// @Summary		closes a session and removes its overlays.
// @Tags			session
// @ID delete-session
// @Router			/api/sessions/{session} [delete]
// @Success		204
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) deleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := api.heatmapService.DeleteSession(ps.ByName("session")); err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// submitKeywordRequest model info
//
//	@Description	request body to submit a keyword.
type submitKeywordRequest struct {
	Keyword string `json:"keyword" validate:"required,max=100"` // places search keyword, compared verbatim with earlier ones
}

// submitKeyword godoc
// @Summary		submits a keyword. the heatmap is built in the background, poll overlays and notices for the result.
// @Tags			session
// @ID submit-keyword
// @Param			body	body	submitKeywordRequest	true
// @Accept			application/json
// @Produce		application/json
// @Router			/api/sessions/{session}/keywords [post]
// @Success		202
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
// @Failure		409	{object}	errorResponse
// @Failure		429	{object}	errorResponse
func (api *heatmapAPI) submitKeyword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var request submitKeywordRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.heatmapService.Submit(ps.ByName("session"), request.Keyword); err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusAccepted, envelope{"data": envelope{"keyword": request.Keyword}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// overlaysResponse model info
//
//	@Description	rendered overlays of a session and the keywords still being searched.
type overlaysResponse struct {
	Data struct {
		Overlays []session.LayerInfo `json:"overlays"`
		Pending  []string            `json:"pending"`
	} `json:"data"`
}

// overlays godoc
// @Summary		lists the rendered overlays of the session, with their color and visibility.
// @Tags			overlay
// @ID overlays
// @Produce		application/json
// @Router			/api/sessions/{session}/overlays [get]
// @Success		200	{object}	overlaysResponse
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) overlays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	layers, pending, err := api.heatmapService.Overlays(ps.ByName("session"))
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}

	var resp overlaysResponse
	resp.Data.Overlays = layers
	resp.Data.Pending = pending
	if err := api.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// overlay godoc
// @Summary		returns the points of one overlay as a geojson feature collection.
// @Tags			overlay
// @ID overlay
// @Produce		application/geo+json
// @Router			/api/sessions/{session}/overlays/{overlay} [get]
// @Success		200
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) overlay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	fc, err := api.heatmapService.Overlay(ps.ByName("session"), ps.ByName("overlay"))
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.writeGeoJSON(w, r, fc)
}

// export godoc
// @Summary		returns the points of every visible overlay of the session as one geojson feature collection.
// @Tags			overlay
// @ID export
// @Produce		application/geo+json
// @Router			/api/sessions/{session}/export [get]
// @Success		200
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) export(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	fc, err := api.heatmapService.Export(ps.ByName("session"))
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	api.writeGeoJSON(w, r, fc)
}

func (api *heatmapAPI) writeGeoJSON(w http.ResponseWriter, r *http.Request, fc *geojson.FeatureCollection) {
	raw, err := fc.MarshalJSON()
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		api.logError(r, err)
	}
}

// setVisibilityRequest model info
//
//	@Description	request body to show or hide an overlay.
type setVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// setVisibility godoc
// @Summary		shows or hides an overlay, like ticking its checkbox.
// @Tags			overlay
// @ID set-visibility
// @Param			body	body	setVisibilityRequest	true
// @Accept			application/json
// @Router			/api/sessions/{session}/overlays/{overlay}/visibility [put]
// @Success		204
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) setVisibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var request setVisibilityRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.heatmapService.SetVisible(ps.ByName("session"), ps.ByName("overlay"), *request.Visible); err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noticesResponse struct {
	Data []session.Notice `json:"data"`
}

// notices godoc
// @Summary		returns and clears the notices of the session (no results, duplicate keyword, api errors, ...).
// @Tags			session
// @ID notices
// @Produce		application/json
// @Router			/api/sessions/{session}/notices [get]
// @Success		200	{object}	noticesResponse
// @Failure		404	{object}	errorResponse
func (api *heatmapAPI) notices(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	notices, err := api.heatmapService.Notices(ps.ByName("session"))
	if err != nil {
		api.ServiceErrorResponse(w, r, err)
		return
	}
	if notices == nil {
		notices = []session.Notice{}
	}
	if err := api.writeJSON(w, http.StatusOK, noticesResponse{Data: notices}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *heatmapAPI) validateRequest(request any) error {
	if err := api.validate.Struct(request); err != nil {
		vv := translateError(err, api.trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return fmt.Errorf("validation error: %v", vvString)
	}
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf("%s", e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
