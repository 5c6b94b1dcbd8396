package service

// 测试用固定主键。列类型为 uuid，标识符必须是合法 UUID。
const (
	testCustomerID   = "00000000-0000-4000-8000-000000000001"
	testWarehouseID  = "00000000-0000-4000-8000-000000000002"
	testWarehouse2ID = "00000000-0000-4000-8000-000000000003"
	testMaterialID   = "00000000-0000-4000-8000-000000000004"
	testUnitID       = "00000000-0000-4000-8000-000000000005"
	testReceivingID  = "00000000-0000-4000-8000-000000000006"
	testLocationID   = "00000000-0000-4000-8000-000000000007"
	testPallet1ID    = "00000000-0000-4000-8000-000000000011"
	testPallet2ID    = "00000000-0000-4000-8000-000000000012"
	testPallet3ID    = "00000000-0000-4000-8000-000000000013"
	missingID        = "ffffffff-ffff-4fff-8fff-ffffffffffff"
)
