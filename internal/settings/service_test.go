package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
)

const settingsDDL = `
CREATE TABLE business_settings (
	id TEXT PRIMARY KEY,
	business_name TEXT NOT NULL,
	business_address TEXT NOT NULL,
	business_phone_number TEXT NOT NULL,
	business_email TEXT,
	gst_number TEXT,
	upi_id TEXT NOT NULL,
	upi_qr_image TEXT NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);`

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(settingsDDL).Error)

	svc, err := NewService(NewRepository(db.Wrap(conn)), nil)
	require.NoError(t, err)
	return svc, conn
}

func sampleRequest() UpsertRequest {
	gst := "24ABCDE1234F1Z5"
	return UpsertRequest{
		BusinessName:        "Jalaram Khakhra",
		BusinessAddress:     "12 Market Road, Rajkot",
		BusinessPhoneNumber: "+919800000000",
		GSTNumber:           &gst,
		UPIID:               "jalaram@upi",
		UPIQRImage:          "https://cdn.example.com/qr.png",
	}
}

func TestGetBeforeSave(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, MsgNotConfigured, pkgerrors.As(err).Message())
}

func TestUpsertCreatesThenOverwrites(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, MsgSaved, first.Message)
	require.NotNil(t, first.Settings.GSTNumber)
	assert.Equal(t, "24ABCDE1234F1Z5", *first.Settings.GSTNumber)

	req := sampleRequest()
	req.BusinessName = "Jalaram Foods"
	req.GSTNumber = nil
	second, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.Settings.ID, second.Settings.ID)
	assert.Nil(t, second.Settings.GSTNumber)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jalaram Foods", got.BusinessName)

	var count int64
	require.NoError(t, conn.Table("business_settings").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
}
