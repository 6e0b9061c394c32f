package services_test

import (
	"testing"

	"github.com/effective-security/toolhost/services"
	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	t.Parallel()

	tcases := []struct {
		tool     string
		attr     string
		factory  string
		typeName string
	}{
		{"sales", "sales_service", "get_sales_service", "SalesService"},
		{"data_warehouse", "data_warehouse_service", "get_data_warehouse_service", "DataWarehouseService"},
		{"fabric_data", "fabric_data_service", "get_fabric_data_service", "FabricDataService"},
		{"KV_lookup", "KV_lookup_service", "get_KV_lookup_service", "KvLookupService"},
		{"a__b_", "a__b__service", "get_a__b__service", "ABService"},
	}
	for _, tc := range tcases {
		t.Run(tc.tool, func(t *testing.T) {
			assert.Equal(t, tc.attr, services.ServiceAttr(tc.tool))
			assert.Equal(t, tc.factory, services.FactoryName(tc.tool))
			assert.Equal(t, tc.typeName, services.TypeName(tc.tool))
		})
	}
}
