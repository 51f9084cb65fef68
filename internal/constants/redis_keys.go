package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// RankModulePrefix 批量排序模块
	RankModulePrefix = "rank"
	// ProfileModulePrefix 档案模块
	ProfileModulePrefix = "profile"

	// EntitySession 排序会话实体
	EntitySession = "session"
	// EntityLock 分布式锁实体
	EntityLock = "lock"
	// EntityDoc 档案文档实体
	EntityDoc = "doc"

	// KeyRankSession 某岗位的批量排序结果缓存 (ZSET)
	// 格式: app:rank:session:{jobID}
	KeyRankSession = AppPrefix + ":" + RankModulePrefix + ":" + EntitySession + ":%s"

	// KeyRankLock 批量排序分布式锁 (STRING)
	// 格式: app:rank:lock:{jobID}
	KeyRankLock = AppPrefix + ":" + RankModulePrefix + ":" + EntityLock + ":%s"

	// KeyJobProfileDoc 岗位画像缓存 (STRING, JSON)
	// 格式: app:profile:doc:job:{jobID}
	KeyJobProfileDoc = AppPrefix + ":" + ProfileModulePrefix + ":" + EntityDoc + ":job:%s"
)
