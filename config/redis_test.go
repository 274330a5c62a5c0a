package config

import "testing"

func TestInitRedis_UnsetAddrLeavesClientNil(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	InitRedis()
	if RedisClient != nil {
		t.Error("RedisClient should be nil without REDIS_ADDR")
	}
}

func TestInitRedis_ReadsAddrAndDB(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	InitRedis()
	defer func() { RedisClient = nil }()

	if RedisClient == nil {
		t.Fatal("RedisClient should be configured")
	}
	opts := RedisClient.Options()
	if opts.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want localhost:6379", opts.Addr)
	}
	if opts.DB != 3 {
		t.Errorf("DB = %d, want 3", opts.DB)
	}
}
