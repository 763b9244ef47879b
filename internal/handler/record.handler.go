package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"record-service/internal/domain"
	"record-service/internal/usecase"
	"record-service/shared/response"
	"record-service/shared/utils/errors"

	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies at 100kb.
const MaxBodyBytes = 100 << 10

type RecordHandler struct {
	uc     *usecase.RecordUsecase
	logger *zap.Logger
}

func NewRecordHandler(uc *usecase.RecordUsecase, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateRecord stores a record from a {name, album} body.
// POST /records
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) error {
	body, err := decodeBody(w, r)
	if err != nil {
		return err
	}

	req, err := toCreateRequest(body)
	if err != nil {
		return err
	}

	rec, err := h.uc.CreateRecord(r.Context(), req)
	if err != nil {
		return err
	}

	response.JSON(w, http.StatusCreated, rec)
	return nil
}

// GetRecords lists every stored record.
// GET /records
func (h *RecordHandler) GetRecords(w http.ResponseWriter, r *http.Request) error {
	records, err := h.uc.GetAllRecords(r.Context())
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.Record{}
	}

	h.logger.Debug("Listing records", zap.Int("count", len(records)))
	response.JSON(w, http.StatusOK, records)
	return nil
}

// decodeBody parses any JSON body regardless of Content-Type. An empty
// body or a non-object value yields an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &xerrors.HTTPError{Status: http.StatusRequestEntityTooLarge, Msg: "request entity too large", Err: err}
		}
		return nil, xerrors.BadRequest(err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &xerrors.HTTPError{Status: http.StatusBadRequest, Msg: fmt.Sprintf("Invalid JSON body: %v", err), Err: err}
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return obj, nil
}

func toCreateRequest(body map[string]interface{}) (*domain.CreateRecordRequest, error) {
	name, nameSet, nameErr := stringField("name", body["name"])
	album, albumSet, albumErr := stringField("album", body["album"])

	if !nameSet || !albumSet {
		return nil, xerrors.ErrRequiredFields
	}
	if nameErr != nil {
		return nil, nameErr
	}
	if albumErr != nil {
		return nil, albumErr
	}

	return &domain.CreateRecordRequest{Name: name, Album: album}, nil
}

// stringField reports whether v is truthy (null, false, 0 and "" are not)
// and casts scalars to their string form. Objects and arrays are truthy
// but cannot be cast.
func stringField(path string, v interface{}) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, val != "", nil
	case bool:
		if !val {
			return "", false, nil
		}
		return "true", true, nil
	case float64:
		if val == 0 || math.IsNaN(val) {
			return "", false, nil
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	default:
		return "", true, fmt.Errorf("Record validation failed: %s: Cast to string failed for value of type %T", path, v)
	}
}
