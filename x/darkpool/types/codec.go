package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterCodec registers the necessary interfaces and concrete types
func RegisterCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgPlaceOrder{}, "darkpool/MsgPlaceOrder", nil)
	cdc.RegisterConcrete(&MsgCancelOrder{}, "darkpool/MsgCancelOrder", nil)
	cdc.RegisterConcrete(&MsgRequestDecryption{}, "darkpool/MsgRequestDecryption", nil)
	cdc.RegisterConcrete(&MsgFulfillDecryption{}, "darkpool/MsgFulfillDecryption", nil)
	cdc.RegisterConcrete(&MsgConsumeDecryption{}, "darkpool/MsgConsumeDecryption", nil)
	cdc.RegisterConcrete(&MsgSweepExpired{}, "darkpool/MsgSweepExpired", nil)
	cdc.RegisterConcrete(&MsgRevokeAccess{}, "darkpool/MsgRevokeAccess", nil)
	cdc.RegisterConcrete(&MsgPause{}, "darkpool/MsgPause", nil)
	cdc.RegisterConcrete(&MsgUnpause{}, "darkpool/MsgUnpause", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "darkpool/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the module's interfaces with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgPlaceOrder{},
		&MsgCancelOrder{},
		&MsgRequestDecryption{},
		&MsgFulfillDecryption{},
		&MsgConsumeDecryption{},
		&MsgSweepExpired{},
		&MsgRevokeAccess{},
		&MsgPause{},
		&MsgUnpause{},
		&MsgUpdateParams{},
	)
}

var (
	amino     = codec.NewLegacyAmino()
	ModuleCdc = codec.NewAminoCodec(amino)
)

func init() {
	RegisterCodec(amino)
	amino.Seal()
}
