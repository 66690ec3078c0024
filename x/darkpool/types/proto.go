package types

import "fmt"

// The module's messages are written by hand rather than generated from proto
// files, so each one carries the gogoproto marker methods the SDK message
// registry requires.

func (m *MsgPlaceOrder) Reset()         { *m = MsgPlaceOrder{} }
func (m *MsgPlaceOrder) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgPlaceOrder) ProtoMessage()  {}

func (m *MsgCancelOrder) Reset()         { *m = MsgCancelOrder{} }
func (m *MsgCancelOrder) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgCancelOrder) ProtoMessage()  {}

func (m *MsgRequestDecryption) Reset()         { *m = MsgRequestDecryption{} }
func (m *MsgRequestDecryption) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgRequestDecryption) ProtoMessage()  {}

func (m *MsgFulfillDecryption) Reset()         { *m = MsgFulfillDecryption{} }
func (m *MsgFulfillDecryption) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgFulfillDecryption) ProtoMessage()  {}

func (m *MsgConsumeDecryption) Reset()         { *m = MsgConsumeDecryption{} }
func (m *MsgConsumeDecryption) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgConsumeDecryption) ProtoMessage()  {}

func (m *MsgSweepExpired) Reset()         { *m = MsgSweepExpired{} }
func (m *MsgSweepExpired) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgSweepExpired) ProtoMessage()  {}

func (m *MsgRevokeAccess) Reset()         { *m = MsgRevokeAccess{} }
func (m *MsgRevokeAccess) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgRevokeAccess) ProtoMessage()  {}

func (m *MsgPause) Reset()         { *m = MsgPause{} }
func (m *MsgPause) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgPause) ProtoMessage()  {}

func (m *MsgUnpause) Reset()         { *m = MsgUnpause{} }
func (m *MsgUnpause) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgUnpause) ProtoMessage()  {}

func (m *MsgUpdateParams) Reset()         { *m = MsgUpdateParams{} }
func (m *MsgUpdateParams) String() string { return fmt.Sprintf("%v", *m) }
func (m *MsgUpdateParams) ProtoMessage()  {}
