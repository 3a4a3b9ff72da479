package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
	"github.com/jhoicas/pesquera-erp/internal/domain/entity"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/evidence"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pesquera-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pesquera-erp/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "user-1"
	testCompanyID = "company-1"
	testIssuer    = "pesquera-erp-test"
)

func bearer(t *testing.T, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, CompanyID: companyID, Role: "tesorero"}, testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	store.AddMaster(entity.MasterCompany, testCompanyID, "company-2")
	store.AddMaster(entity.MasterEntity, "entity-1")
	store.AddMaster(entity.MasterEmployee, "employee-1")
	store.AddMaster(entity.MasterVessel, "vessel-1")
	store.AddMaster(entity.MasterCurrency, "PEN")
	store.AddMaster(entity.MasterAccount, "account-1")
	store.AddMaster(entity.MasterMovementType, "movement-type-1")
	store.AddSeries(entity.DocumentSeries{
		ID: "serie-contratos", CompanyID: testCompanyID, DocumentType: entity.DocumentTypeContract,
		Serie: "7", Correlativo: 10, LeftZerosSeries: 3, LeftZerosCorrelativo: 6, Active: true,
	})
	store.AddSettlement(entity.SalesSettlement{ID: "sa-1", SalesOrderID: "so-1"})

	log := zerolog.Nop()
	repos := store.Repos()
	refs := masterdata.NewChecker(repos.MasterData())
	issuer := documents.NewIssuer(store, refs, numbering.NewAllocator(log), log)
	defaults := documents.Defaults{ContractValidityDays: 365, QuotationValidityDays: 15, WorkOrderDueDays: 7}

	fs := afero.NewMemMapFs()
	archiver := evidence.NewArchiver(fs, evidence.NewLocalDestination(fs, "archive"), log)
	reconciler, err := treasury.NewReconciler(treasury.DefaultHandlers()...)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		ContractUC:  documents.NewContractUseCase(issuer, store, repos.Contracts(), refs, defaults),
		QuotationUC: documents.NewSalesQuotationUseCase(issuer, store, repos.SalesQuotations(), refs, defaults),
		WorkOrderUC: documents.NewWorkOrderUseCase(issuer, store, repos.WorkOrders(), refs, defaults),
		Treasury: treasury.NewService(store, repos.Movements(), refs, reconciler,
			evidence.NewInlineScheduler(archiver), log),
		JWTSecret: testJWTSecret,
		Log:       log,
	})
	return &testAPI{t: t, app: app, store: store}
}

func (a *testAPI) do(method, path, companyID string, body any) (*http.Response, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(a.t, companyID))
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, out
}

func contractBody() map[string]any {
	return map[string]any{
		"series_id":       "serie-contratos",
		"counterparty_id": "entity-1",
		"responsible_id":  "employee-1",
		"amount":          "1500",
		"currency_id":     "PEN",
	}
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestContracts_CreateAsignaNumero(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, contractBody())

	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out dto.ContractResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "007-000011", out.Numbering.FullNumber)
	assert.Equal(t, "007", out.Numbering.NumSeries)
	assert.Equal(t, "000011", out.Numbering.NumCorrelativo)
}

func TestContracts_ReferenciaFaltanteEs400ConCampo(t *testing.T) {
	api := newTestAPI(t)
	body := contractBody()
	body["counterparty_id"] = "entity-404"

	resp, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "counterparty_id", e.Field)
}

func TestContracts_UpdateIgnoraNumeroDelCliente(t *testing.T) {
	api := newTestAPI(t)
	_, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, contractBody())
	var created dto.ContractResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw := api.do(http.MethodPut, "/api/contracts/"+created.ID, testCompanyID, map[string]any{
		"notes":           "renovación",
		"full_number":     "999-999999",
		"num_correlativo": "999999",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var updated dto.ContractResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "007-000011", updated.Numbering.FullNumber)
	assert.Equal(t, "renovación", updated.Notes)
}

func TestContracts_OtraEmpresaEs404(t *testing.T) {
	api := newTestAPI(t)
	_, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, contractBody())
	var created dto.ContractResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, _ := api.do(http.MethodGet, "/api/contracts/"+created.ID, "company-2", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContracts_EmbarcacionOcupadaEs409(t *testing.T) {
	api := newTestAPI(t)
	body := contractBody()
	body["vessel_id"] = "vessel-1"
	first, _ := api.do(http.MethodPost, "/api/contracts", testCompanyID, body)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	resp, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, body)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "vessel_id", decodeError(t, raw).Field)
}

func TestContracts_ErrorDeBaseDeDatosNoFiltraElDriver(t *testing.T) {
	api := newTestAPI(t)
	api.store.FailNext("contracts.create", errors.New(`pq: relation "contracts" does not exist`))

	resp, raw := api.do(http.MethodPost, "/api/contracts", testCompanyID, contractBody())

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", decodeError(t, raw).Code)
	assert.NotContains(t, string(raw), "relation")
}

func TestContracts_BodyInvalido(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/contracts", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, testCompanyID))

	resp, err := api.app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func movementBody() map[string]any {
	return map[string]any{
		"origin_account_id": "account-1",
		"origin_company_id": testCompanyID,
		"movement_type_id":  "movement-type-1",
		"currency_id":       "PEN",
		"amount":            "320.50",
		"origin_module":     int(entity.OriginSales),
		"origin_record_id":  "sa-1",
		"entity_id":         "entity-1",
	}
}

func TestTreasury_CicloDeValidacion(t *testing.T) {
	api := newTestAPI(t)
	resp, raw := api.do(http.MethodPost, "/api/treasury/movements", testCompanyID, movementBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.TreasuryMovementResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "PENDIENTE", created.State)

	resp, raw = api.do(http.MethodPost, "/api/treasury/movements/"+created.ID+"/validate", testCompanyID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var validated dto.TreasuryMovementResponse
	require.NoError(t, json.Unmarshal(raw, &validated))
	assert.Equal(t, int(entity.MovementStateValidated), validated.StateID)
	assert.NotNil(t, validated.ValidatedAt)

	sync, ok := api.store.SettlementSync(entity.OriginSales, "sa-1")
	require.True(t, ok)
	assert.True(t, sync.TreasuryValidated)

	resp, raw = api.do(http.MethodPost, "/api/treasury/movements/"+created.ID+"/validate", testCompanyID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "state", decodeError(t, raw).Field)

	resp, _ = api.do(http.MethodDelete, "/api/treasury/movements/"+created.ID, testCompanyID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTreasury_ModuloNoSoportado(t *testing.T) {
	api := newTestAPI(t)
	body := movementBody()
	body["origin_module"] = 99

	resp, raw := api.do(http.MethodPost, "/api/treasury/movements", testCompanyID, body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, raw).Message, "unsupported origin module: 99")
}

func TestTreasury_EliminarPendiente(t *testing.T) {
	api := newTestAPI(t)
	_, raw := api.do(http.MethodPost, "/api/treasury/movements", testCompanyID, movementBody())
	var created dto.TreasuryMovementResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, _ := api.do(http.MethodDelete, "/api/treasury/movements/"+created.ID, testCompanyID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/api/treasury/movements/"+created.ID, testCompanyID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTreasury_MovimientoInexistente(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(http.MethodPost, "/api/treasury/movements/no-existe/validate", testCompanyID, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
