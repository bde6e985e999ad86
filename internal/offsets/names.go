package offsets

// Field names are "<group>.<field>". Module-relative globals live in the
// client group; everything else is a displacement inside a target struct.
const (
	EntityList            = "client.dwEntityList"
	ViewMatrix            = "client.dwViewMatrix"
	ViewAngle             = "client.dwViewAngles"
	LocalPlayerController = "client.dwLocalPlayerController"
	LocalPlayerPawn       = "client.dwLocalPlayerPawn"
	GlobalVars            = "client.dwGlobalVars"
	PlantedC4             = "client.dwPlantedC4"
	Sensitivity           = "client.dwSensitivity"

	InputSystem = "inputsystem.dwInputSystem"

	ButtonAttack = "buttons.attack"
	ButtonJump   = "buttons.jump"
	ButtonRight  = "buttons.right"
	ButtonLeft   = "buttons.left"

	ControllerIsAlive    = "controller.m_bPawnIsAlive"
	ControllerPlayerPawn = "controller.m_hPlayerPawn"
	ControllerName       = "controller.m_iszPlayerName"

	PawnBulletServices    = "pawn.m_pBulletServices"
	PawnCameraServices    = "pawn.m_pCameraServices"
	PawnClippingWeapon    = "pawn.m_pClippingWeapon"
	PawnIsScoped          = "pawn.m_bIsScoped"
	PawnIsDefusing        = "pawn.m_bIsDefusing"
	PawnTotalHit          = "pawn.m_totalHitsOnServer"
	PawnPosition          = "pawn.m_vOldOrigin"
	PawnArmor             = "pawn.m_ArmorValue"
	PawnMaxHealth         = "pawn.m_iMaxHealth"
	PawnHealth            = "pawn.m_iHealth"
	PawnGameSceneNode     = "pawn.m_pGameSceneNode"
	PawnBoneArray         = "pawn.m_boneArray"
	PawnEyeAngles         = "pawn.m_angEyeAngles"
	PawnLastClipCameraPos = "pawn.m_vecLastClipCameraPos"
	PawnShotsFired        = "pawn.m_iShotsFired"
	PawnFlashDuration     = "pawn.m_flFlashDuration"
	PawnAimPunchAngle     = "pawn.m_aimPunchAngle"
	PawnAimPunchCache     = "pawn.m_aimPunchCache"
	PawnIDEntIndex        = "pawn.m_iIDEntIndex"
	PawnTeam              = "pawn.m_iTeamNum"
	PawnFovStart          = "pawn.m_iFOVStart"
	PawnFlags             = "pawn.m_fFlags"
	PawnSpottedByMask     = "pawn.m_bSpottedByMask"
	PawnAbsVelocity       = "pawn.m_vecAbsVelocity"
	PawnWaitForNoAttack   = "pawn.m_bWaitForNoAttack"

	GlobalVarRealTime        = "globalvars.realTime"
	GlobalVarFrameCount      = "globalvars.frameCount"
	GlobalVarMaxClients      = "globalvars.maxClients"
	GlobalVarIntervalPerTick = "globalvars.intervalPerTick"
	GlobalVarCurrentTime     = "globalvars.currentTime"
	GlobalVarCurrentTime2    = "globalvars.currentTime2"
	GlobalVarTickCount       = "globalvars.tickCount"
	GlobalVarIntervalTick2   = "globalvars.intervalPerTick2"
	GlobalVarCurrentNetchan  = "globalvars.currentNetchan"
	GlobalVarCurrentMap      = "globalvars.currentMap"
	GlobalVarCurrentMapName  = "globalvars.currentMapName"

	PlayerControllerSteamID         = "playercontroller.m_steamID"
	PlayerControllerPawn            = "playercontroller.m_hPawn"
	PlayerControllerObserverService = "playercontroller.m_pObserverServices"
	PlayerControllerObserverTarget  = "playercontroller.m_hObserverTarget"
	PlayerControllerController      = "playercontroller.m_hController"
	PlayerControllerPawnArmor       = "playercontroller.m_iPawnArmor"
	PlayerControllerHasDefuser      = "playercontroller.m_bPawnHasDefuser"
	PlayerControllerHasHelmet       = "playercontroller.m_bPawnHasHelmet"

	EconEntityAttributeManager = "econentity.m_AttributeManager"

	WeaponDataPtr             = "weapon.m_WeaponDataPtr"
	WeaponName                = "weapon.m_szName"
	WeaponClip1               = "weapon.m_iClip1"
	WeaponMaxClip             = "weapon.m_iMaxClip1"
	WeaponItem                = "weapon.m_Item"
	WeaponItemDefinitionIndex = "weapon.m_iItemDefinitionIndex"

	C4BeingDefused    = "c4.m_bBeingDefused"
	C4DefuseCountDown = "c4.m_flDefuseCountDown"
	C4BombSite        = "c4.m_nBombSite"
)
