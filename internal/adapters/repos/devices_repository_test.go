package repos_test

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/ErVaaL/argos-resource-service/internal/adapters/repos"
	"github.com/ErVaaL/argos-resource-service/internal/domain/model"
	"github.com/ErVaaL/argos-resource-service/pkg/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var deviceColumns = []string{"id", "name", "type", "building", "room", "active", "config"}

func runDeviceRepoTest(
	t *testing.T,
	setupMock func(pgxmock.PgxPoolIface),
	testFn func(*testing.T, *repos.DevicesRepository),
) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	setupMock(mock)

	logBuffer := &bytes.Buffer{}
	log := logger.NewBufferedTestLogger(logBuffer)
	repo := repos.NewDevicesRepository(mock, repos.NewPgxScanner(), repos.NewDeviceCriteriaTranslator(&log), &log)
	testFn(t, repo)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDevicesRepository_Save(t *testing.T) {
	t.Parallel()

	insertPrefix := regexp.QuoteMeta(
		`INSERT INTO devices (id,name,type,building,room,active,config) VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (id) DO UPDATE SET`,
	)

	cases := []struct {
		name        string
		device      *model.Device
		setupMock   func(mock pgxmock.PgxPoolIface, device *model.Device)
		expectedErr error
	}{
		{
			name:   "successfully save device",
			device: model.NewDevice("lobby-temp", model.DeviceTypeTemp, "B1", "101"),
			setupMock: func(mock pgxmock.PgxPoolIface, device *model.Device) {
				mock.ExpectExec(insertPrefix).
					WithArgs(
						device.ID.String(),
						device.Name,
						device.Type.String(),
						device.Building,
						device.Room,
						device.Active,
						[]byte(nil),
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name:   "unique violation returns ErrDuplicateDeviceName",
			device: model.NewDevice("lobby-temp", model.DeviceTypeTemp, "B1", "101"),
			setupMock: func(mock pgxmock.PgxPoolIface, device *model.Device) {
				mock.ExpectExec(insertPrefix).
					WithArgs(
						device.ID.String(),
						device.Name,
						device.Type.String(),
						device.Building,
						device.Room,
						device.Active,
						[]byte(nil),
					).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "devices_name_key"})
			},
			expectedErr: model.ErrDuplicateDeviceName,
		},
		{
			name:   "database error returns wrapped ErrDatabaseQuery",
			device: model.NewDevice("lobby-temp", model.DeviceTypeTemp, "B1", "101"),
			setupMock: func(mock pgxmock.PgxPoolIface, device *model.Device) {
				mock.ExpectExec(insertPrefix).
					WithArgs(
						device.ID.String(),
						device.Name,
						device.Type.String(),
						device.Building,
						device.Room,
						device.Active,
						[]byte(nil),
					).
					WillReturnError(errors.New("connection refused"))
			},
			expectedErr: model.ErrDatabaseQuery,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
				tc.setupMock(mock, tc.device)
			}, func(t *testing.T, repo *repos.DevicesRepository) {
				saved, err := repo.Save(t.Context(), tc.device)

				if tc.expectedErr != nil {
					require.ErrorIs(t, err, tc.expectedErr)
					require.Nil(t, saved)

					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.device.ID, saved.ID)
			})
		})
	}
}

func TestDevicesRepository_SaveEncodesConfig(t *testing.T) {
	t.Parallel()

	minValue := 10.5
	device := model.NewDevice("boiler-temp", model.DeviceTypeTemp, "B2", "12")
	device.Config = &model.DeviceConfig{MinValue: &minValue, Tags: []string{"critical"}}

	runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO devices`)).
			WithArgs(
				device.ID.String(),
				device.Name,
				device.Type.String(),
				device.Building,
				device.Room,
				device.Active,
				[]byte(`{"min_value":10.5,"tags":["critical"]}`),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}, func(t *testing.T, repo *repos.DevicesRepository) {
		_, err := repo.Save(t.Context(), device)
		require.NoError(t, err)
	})
}

func TestDevicesRepository_FindByID(t *testing.T) {
	t.Parallel()

	testID := model.NewDeviceID()
	selectByID := regexp.QuoteMeta(
		`SELECT id, name, type, building, room, active, config FROM devices WHERE id = $1 LIMIT 1`,
	)

	cases := []struct {
		name           string
		setupMock      func(mock pgxmock.PgxPoolIface)
		expectedErr    error
		expectedDevice *model.Device
	}{
		{
			name: "successfully get device",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(deviceColumns).
					AddRow(testID.String(), "lobby-temp", "TEMP", "B1", "101", true, []byte(nil))
				mock.ExpectQuery(selectByID).
					WithArgs(testID.String()).
					WillReturnRows(rows)
			},
			expectedDevice: &model.Device{
				ID:       testID,
				Name:     "lobby-temp",
				Type:     model.DeviceTypeTemp,
				Building: "B1",
				Room:     "101",
				Active:   true,
			},
		},
		{
			name: "missing device returns ErrDeviceNotFound",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectByID).
					WithArgs(testID.String()).
					WillReturnRows(pgxmock.NewRows(deviceColumns))
			},
			expectedErr: model.ErrDeviceNotFound,
		},
		{
			name: "database error returns wrapped ErrDatabaseQuery",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectByID).
					WithArgs(testID.String()).
					WillReturnError(errors.New("connection error"))
			},
			expectedErr: model.ErrDatabaseQuery,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runDeviceRepoTest(t, tc.setupMock, func(t *testing.T, repo *repos.DevicesRepository) {
				device, err := repo.FindByID(t.Context(), testID)

				if tc.expectedErr != nil {
					require.ErrorIs(t, err, tc.expectedErr)
					require.Nil(t, device)

					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.expectedDevice, device)
			})
		})
	}
}

func TestDevicesRepository_FindByName(t *testing.T) {
	t.Parallel()

	testID := model.NewDeviceID()
	selectByName := regexp.QuoteMeta(
		`SELECT id, name, type, building, room, active, config FROM devices WHERE name = $1 LIMIT 1`,
	)

	t.Run("found device decodes config", func(t *testing.T) {
		t.Parallel()

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			rows := pgxmock.NewRows(deviceColumns).
				AddRow(testID.String(), "boiler-temp", "TEMP", "B2", "12", true, []byte(`{"min_value":10.5}`))
			mock.ExpectQuery(selectByName).
				WithArgs("boiler-temp").
				WillReturnRows(rows)
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			device, err := repo.FindByName(t.Context(), "boiler-temp")

			require.NoError(t, err)
			require.NotNil(t, device.Config)
			require.NotNil(t, device.Config.MinValue)
			require.InDelta(t, 10.5, *device.Config.MinValue, 0.0001)
		})
	})

	t.Run("missing name reports the name", func(t *testing.T) {
		t.Parallel()

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(selectByName).
				WithArgs("ghost").
				WillReturnRows(pgxmock.NewRows(deviceColumns))
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			device, err := repo.FindByName(t.Context(), "ghost")

			require.ErrorIs(t, err, model.ErrDeviceNotFound)
			require.ErrorContains(t, err, "ghost")
			require.Nil(t, device)
		})
	})
}

func TestDevicesRepository_FindByFilter(t *testing.T) {
	t.Parallel()

	page := model.PageRequest{Page: 0, Size: 20, SortBy: "name", Direction: model.SortAsc}

	t.Run("no filter lists a page with independent total", func(t *testing.T) {
		t.Parallel()

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM devices`)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

			rows := pgxmock.NewRows(deviceColumns).
				AddRow(model.NewDeviceID().String(), "a-sensor", "TEMP", "B1", "101", true, []byte(nil)).
				AddRow(model.NewDeviceID().String(), "b-sensor", "CO2", "B1", "102", true, []byte(nil))
			mock.ExpectQuery(regexp.QuoteMeta(
				`SELECT id, name, type, building, room, active, config FROM devices ORDER BY name ASC LIMIT 20 OFFSET 0`,
			)).
				WillReturnRows(rows)
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			result, err := repo.FindByFilter(t.Context(), nil, page)

			require.NoError(t, err)
			require.Len(t, result.Content, 2)
			require.Equal(t, int64(42), result.TotalElements)
			require.Equal(t, 0, result.Page)
			require.Equal(t, 20, result.Size)
			require.Equal(t, 3, result.TotalPages())
		})
	})

	t.Run("building filter constrains both queries", func(t *testing.T) {
		t.Parallel()

		building := "B7"
		filter := &model.DeviceFilter{Building: &building}

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM devices WHERE building = $1`)).
				WithArgs("B7").
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

			rows := pgxmock.NewRows(deviceColumns).
				AddRow(model.NewDeviceID().String(), "b7-sensor", "MOTION", "B7", "1", true, []byte(nil))
			mock.ExpectQuery(regexp.QuoteMeta(
				`SELECT id, name, type, building, room, active, config FROM devices WHERE building = $1 ORDER BY name ASC LIMIT 20 OFFSET 0`,
			)).
				WithArgs("B7").
				WillReturnRows(rows)
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			result, err := repo.FindByFilter(t.Context(), filter, page)

			require.NoError(t, err)
			require.Len(t, result.Content, 1)
			require.Equal(t, "b7-sensor", result.Content[0].Name)
			require.Equal(t, int64(1), result.TotalElements)
		})
	})

	t.Run("page past the end keeps the total", func(t *testing.T) {
		t.Parallel()

		farPage := model.PageRequest{Page: 9, Size: 20, SortBy: "name", Direction: model.SortAsc}

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM devices`)).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

			mock.ExpectQuery(regexp.QuoteMeta(
				`SELECT id, name, type, building, room, active, config FROM devices ORDER BY name ASC LIMIT 20 OFFSET 180`,
			)).
				WillReturnRows(pgxmock.NewRows(deviceColumns))
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			result, err := repo.FindByFilter(t.Context(), nil, farPage)

			require.NoError(t, err)
			require.Empty(t, result.Content)
			require.Equal(t, int64(5), result.TotalElements)
			require.Equal(t, 1, result.TotalPages())
		})
	})
}

func TestDevicesRepository_DeleteByID(t *testing.T) {
	t.Parallel()

	testID := model.NewDeviceID()
	deleteByID := regexp.QuoteMeta(`DELETE FROM devices WHERE id = $1`)

	t.Run("delete existing row", func(t *testing.T) {
		t.Parallel()

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec(deleteByID).
				WithArgs(testID.String()).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			require.NoError(t, repo.DeleteByID(t.Context(), testID))
		})
	})

	t.Run("deleting a missing id is not an error", func(t *testing.T) {
		t.Parallel()

		runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
			mock.ExpectExec(deleteByID).
				WithArgs(testID.String()).
				WillReturnResult(pgxmock.NewResult("DELETE", 0))
		}, func(t *testing.T, repo *repos.DevicesRepository) {
			require.NoError(t, repo.DeleteByID(t.Context(), testID))
		})
	})
}

func TestDevicesRepository_DeleteAll(t *testing.T) {
	t.Parallel()

	runDeviceRepoTest(t, func(mock pgxmock.PgxPoolIface) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM devices`)).
			WillReturnResult(pgxmock.NewResult("DELETE", 7))
	}, func(t *testing.T, repo *repos.DevicesRepository) {
		require.NoError(t, repo.DeleteAll(t.Context()))
	})
}
