package offsets

// BuiltinBuild identifies the target build the compiled-in table was taken from.
const BuiltinBuild = "builtin"

// Builtin returns the compiled-in profile. Only a handful of these fields are
// read by the snapshot builder; the rest are kept so a profile dump shows the
// whole known layout.
func Builtin() Profile {
	t := Table{}
	for name, off := range map[string]uint64{
		EntityList:            0x17CE6A0,
		ViewMatrix:            0x1820FE0,
		ViewAngle:             0x1891500,
		LocalPlayerController: 0x1810FF0,
		LocalPlayerPawn:       0x16F2520,
		GlobalVars:            0x16A9AF8,
		PlantedC4:             0x17D6680,
		Sensitivity:           0x1891388,

		InputSystem: 0x35720,

		ButtonAttack: 0x141F4E8,
		ButtonJump:   0x1420A80,
		ButtonRight:  0x1420638,
		ButtonLeft:   0x1420628,

		// alive flag and pawn handle share a displacement in this build
		ControllerIsAlive:    0x7EC,
		ControllerPlayerPawn: 0x7EC,
		ControllerName:       0x640,

		PawnBulletServices:    0x16D8,
		PawnCameraServices:    0x10F0,
		PawnClippingWeapon:    0x12B0,
		PawnIsScoped:          0x13E4,
		PawnIsDefusing:        0x13F0,
		PawnTotalHit:          0x40,
		PawnPosition:          0x12AC,
		PawnArmor:             0x14D8,
		PawnMaxHealth:         0x328,
		PawnHealth:            0x32C,
		PawnGameSceneNode:     0x310,
		PawnBoneArray:         0x1F0,
		PawnEyeAngles:         0x1508,
		PawnLastClipCameraPos: 0x1280,
		PawnShotsFired:        0x1404,
		PawnFlashDuration:     0x14C4,
		PawnAimPunchAngle:     0x1718,
		PawnAimPunchCache:     0x1728,
		PawnIDEntIndex:        0x15B4,
		PawnTeam:              0x3BF,
		PawnFovStart:          0x214,
		PawnFlags:             0x3C8,
		PawnSpottedByMask:     0x1628 + 0x8,
		PawnAbsVelocity:       0x3B8,
		PawnWaitForNoAttack:   0x13D0,

		GlobalVarRealTime:        0x00,
		GlobalVarFrameCount:      0x04,
		GlobalVarMaxClients:      0x10,
		GlobalVarIntervalPerTick: 0x14,
		GlobalVarCurrentTime:     0x2C,
		GlobalVarCurrentTime2:    0x30,
		GlobalVarTickCount:       0x40,
		GlobalVarIntervalTick2:   0x44,
		GlobalVarCurrentNetchan:  0x48,
		GlobalVarCurrentMap:      0x180,
		GlobalVarCurrentMapName:  0x188,

		PlayerControllerSteamID:         0x1118,
		PlayerControllerPawn:            0x60C,
		PlayerControllerObserverService: 0x10F8,
		PlayerControllerObserverTarget:  0x44,
		PlayerControllerController:      0x123C,
		PlayerControllerPawnArmor:       0xDDC,
		PlayerControllerHasDefuser:      0xDF0,
		PlayerControllerHasHelmet:       0xDEC,

		EconEntityAttributeManager: 0x10D0,

		WeaponDataPtr:             0x360 + 0x08,
		WeaponName:                0x20,
		WeaponClip1:               0x1570,
		WeaponMaxClip:             0x80,
		WeaponItem:                0x08,
		WeaponItemDefinitionIndex: 0x1BA,

		C4BeingDefused:    0xEBC,
		C4DefuseCountDown: 0xED0,
		C4BombSite:        0xE80,
	} {
		t.Set(name, off)
	}

	return Profile{
		Build:  BuiltinBuild,
		Module: "client.dll",
		Table:  t,
	}
}
