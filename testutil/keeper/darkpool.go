package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	"github.com/veilchain/veil/testutil/fhe"
	"github.com/veilchain/veil/x/darkpool/keeper"
	"github.com/veilchain/veil/x/darkpool/types"
)

// Authority is the governance address used by test keepers.
var Authority = authtypes.NewModuleAddress("gov").String()

// DarkpoolKeeper creates a test keeper for the darkpool module backed by a
// plaintext coprocessor and a recording settlement keeper.
func DarkpoolKeeper(t testing.TB) (*keeper.Keeper, sdk.Context, *fhe.Coprocessor, *fhe.SettlementRecorder) {
	coprocessor := fhe.NewCoprocessor()
	settlement := fhe.NewSettlementRecorder()
	k, ctx := DarkpoolKeeperWithDeps(t, coprocessor, settlement)
	return k, ctx, coprocessor, settlement
}

// DarkpoolKeeperWithDeps creates a test keeper over caller-supplied
// collaborators, so a second keeper can share ciphertext state with the
// first (genesis roundtrips).
func DarkpoolKeeperWithDeps(t testing.TB, coprocessor *fhe.Coprocessor, settlement *fhe.SettlementRecorder) (*keeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	memStoreKey := storetypes.NewMemoryStoreKey(types.MemStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(memStoreKey, storetypes.StoreTypeMemory, nil)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(registry)

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		coprocessor,
		settlement,
		Authority,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: time.Unix(1_000, 0).UTC()}, false, log.NewNopLogger())

	k.InitGenesis(ctx, *types.DefaultGenesis())

	return k, ctx
}
