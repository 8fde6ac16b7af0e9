package combat

import "fmt"

// Player-facing results of an ended fight
const (
	MsgVictory = "You won!"
	MsgDefeat  = "You lost."
	MsgDraw    = "Nobody won this fight."
)

const (
	msgNotStarted         = "The fight has not started."
	msgPlayerNoStamina    = "You lacked the stamina to strike."
	msgPlayerNoSkill      = "You lacked the stamina to use the skill."
	msgOpponentNoStamina  = "The enemy lacked the stamina to strike."
	msgPlayerDealtFormat  = "You dealt %.1f damage to the enemy!"
	msgPlayerSkillFormat  = "You used %s and dealt %.1f damage to the enemy!"
	msgOpponentDealFormat = "The enemy dealt %.1f damage to you!"
	msgOpponentSkillUsed  = "The enemy used %s."
)

func playerDealt(damage float64) string {
	return fmt.Sprintf(msgPlayerDealtFormat, damage)
}

func playerSkill(skill string, damage float64) string {
	return fmt.Sprintf(msgPlayerSkillFormat, skill, damage)
}

func opponentDealt(damage float64) string {
	return fmt.Sprintf(msgOpponentDealFormat, damage)
}

func opponentSkill(skill string) string {
	return fmt.Sprintf(msgOpponentSkillUsed, skill)
}
